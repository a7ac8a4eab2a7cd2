package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// categoryDirectory caches the catalog's category list. The list is
// effectively static upstream, so it is fetched once; singleflight
// collapses concurrent misses into a single request.
type categoryDirectory struct {
	mu    sync.RWMutex
	slugs []string
	sfg   singleflight.Group
}

// Categories returns the catalog's category slugs.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	c.categories.mu.RLock()
	cached := c.categories.slugs
	c.categories.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := c.categories.sfg.Do("category-list", func() (interface{}, error) {
		// The flight is shared by every concurrent caller, so it must
		// not inherit the first caller's deadline; the HTTP client's
		// own timeout bounds the fetch.
		body, err := c.get(context.WithoutCancel(ctx), "/products/category-list", nil)
		if err != nil {
			return nil, err
		}

		var slugs []string
		if err := json.Unmarshal(body, &slugs); err != nil {
			return nil, fmt.Errorf("%w: decode categories: %v", ErrFetchFailed, err)
		}

		c.categories.mu.Lock()
		c.categories.slugs = slugs
		c.categories.mu.Unlock()
		return slugs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}
