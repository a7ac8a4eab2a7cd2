package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as plain JSON numbers, both from the upstream
	// catalog and in our own responses and snapshots.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the catalog shape returned by the upstream API. Products are
// always fetched, never constructed locally; Stock is the catalog's stock
// count, not a cart quantity.
type Product struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	Category            string          `json:"category"`
	Description         string          `json:"description,omitempty"`
	Price               decimal.Decimal `json:"price"`
	DiscountPercentage  float64         `json:"discountPercentage"`
	Rating              float64         `json:"rating"`
	Stock               int             `json:"stock"`
	Thumbnail           string          `json:"thumbnail,omitempty"`
	Images              []string        `json:"images"`
	Tags                []string        `json:"tags,omitempty"`
	AvailabilityStatus  string          `json:"availabilityStatus,omitempty"`
	ShippingInformation string          `json:"shippingInformation,omitempty"`
}

// ThumbnailURL returns the canonical thumbnail: the first image,
// falling back to the explicit thumbnail field.
func (p Product) ThumbnailURL() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Thumbnail
}
