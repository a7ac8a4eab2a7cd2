package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrFetchFailed covers transport failures and non-2xx statuses alike.
	// Callers render one generic failure message regardless of cause.
	ErrFetchFailed = errors.New("catalog fetch failed")

	// ErrNotFound is returned by ByID when the catalog has no such product.
	ErrNotFound = errors.New("product not found")
)

// Client issues read-only requests against the external product catalog.
// One request per invocation, no retries, no caching (the category
// directory is the single exception, see categories.go). Safe for
// concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]

	categories categoryDirectory
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing product is a valid answer, not an upstream outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cb: cb,
	}
}

type listResponse struct {
	Products []domain.Product `json:"products"`
}

// Page fetches one page of the catalog. The offset is (page-1)*size, so
// page 1 starts at the beginning.
func (c *Client) Page(ctx context.Context, page, size int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	return c.List(ctx, size, (page-1)*size)
}

// List fetches up to limit products starting at skip.
func (c *Client) List(ctx context.Context, limit, skip int) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	body, err := c.get(ctx, "/products", q)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Featured returns the first eight products, the slice the home page shows.
func (c *Client) Featured(ctx context.Context) ([]domain.Product, error) {
	return c.List(ctx, 8, 0)
}

// ByID fetches a single product. A 404 from the catalog maps to ErrNotFound.
func (c *Client) ByID(ctx context.Context, id int64) (domain.Product, error) {
	body, err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return domain.Product{}, err
	}

	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Product{}, fmt.Errorf("%w: decode product: %v", ErrFetchFailed, err)
	}
	return p, nil
}

// ByCategory fetches up to limit products of a category starting at skip.
func (c *Client) ByCategory(ctx context.Context, slug string, limit, skip int) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	body, err := c.get(ctx, "/products/category/"+url.PathEscape(slug), q)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Search runs a full-text search on the catalog. An empty or
// whitespace-only term short-circuits: no request is made and an empty
// result set is returned.
func (c *Client) Search(ctx context.Context, term string) ([]domain.Product, error) {
	if strings.TrimSpace(term) == "" {
		return []domain.Product{}, nil
	}

	q := url.Values{}
	q.Set("q", term)

	body, err := c.get(ctx, "/products/search", q)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Similar returns up to four products sharing the given product's
// category, excluding the product itself. A product without a category
// has no similar products.
func (c *Client) Similar(ctx context.Context, p domain.Product) ([]domain.Product, error) {
	if p.Category == "" {
		return nil, nil
	}

	products, err := c.ByCategory(ctx, p.Category, 4, 0)
	if err != nil {
		return nil, err
	}

	similar := make([]domain.Product, 0, len(products))
	for _, sp := range products {
		if sp.ID != p.ID {
			similar = append(similar, sp)
		}
	}
	return similar, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.doGet(ctx, u)
	})
	if err == nil || errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrNotFound) {
		return body, err
	}
	// Breaker open or half-open limit reached: same generic failure.
	return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
}

func (c *Client) doGet(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

func decodeList(body []byte) ([]domain.Product, error) {
	var res listResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", ErrFetchFailed, err)
	}
	return res.Products, nil
}
