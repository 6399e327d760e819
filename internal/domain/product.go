package domain

import (
	"fmt"
	"strings"
	"time"
)

// SalesHistoryLen is the fixed number of weekly sales buckets kept per product.
const SalesHistoryLen = 7

const (
	MaxNameLen        = 100
	MaxSKULen         = 50
	MaxDescriptionLen = 500
)

// FieldError reports a validation failure on a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Product is one catalog record. JSON field names match the stored wire shape.
type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"productName"`
	SKU              string  `json:"sku"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	StockQuantity    int     `json:"stockQuantity"`
	Description      string  `json:"description,omitempty"`
	Active           bool    `json:"active"`
	CreatedAt        string  `json:"createdAt"`
	Satisfaction     int     `json:"satisfaction,omitempty"`
	DeliveryProgress int     `json:"deliveryProgress,omitempty"`
	SalesData        []int   `json:"salesData,omitempty"`
	ImageURL         string  `json:"imageUrl,omitempty"`
}

func (p Product) RecordID() string { return p.ID }

// NormalizeSKU trims surrounding whitespace and uppercases a SKU.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Validate checks the product invariants. The first violated field is reported.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &FieldError{Field: "productName", Message: "product name is required"}
	}
	if len(p.Name) > MaxNameLen {
		return &FieldError{Field: "productName", Message: fmt.Sprintf("must be at most %d characters", MaxNameLen)}
	}
	if strings.TrimSpace(p.SKU) == "" {
		return &FieldError{Field: "sku", Message: "SKU is required"}
	}
	if len(p.SKU) > MaxSKULen {
		return &FieldError{Field: "sku", Message: fmt.Sprintf("must be at most %d characters", MaxSKULen)}
	}
	if p.SKU != NormalizeSKU(p.SKU) {
		return &FieldError{Field: "sku", Message: "SKU must be uppercase"}
	}
	if strings.TrimSpace(p.Category) == "" {
		return &FieldError{Field: "category", Message: "category is required"}
	}
	if p.Price < 0 {
		return &FieldError{Field: "price", Message: "price must not be negative"}
	}
	if p.StockQuantity < 0 {
		return &FieldError{Field: "stockQuantity", Message: "stock quantity must not be negative"}
	}
	if len(p.Description) > MaxDescriptionLen {
		return &FieldError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)}
	}
	if p.Satisfaction != 0 && (p.Satisfaction < 1 || p.Satisfaction > 5) {
		return &FieldError{Field: "satisfaction", Message: "satisfaction must be between 1 and 5"}
	}
	if p.DeliveryProgress < 0 || p.DeliveryProgress > 100 {
		return &FieldError{Field: "deliveryProgress", Message: "delivery progress must be between 0 and 100"}
	}
	if p.SalesData != nil {
		if len(p.SalesData) != SalesHistoryLen {
			return &FieldError{Field: "salesData", Message: fmt.Sprintf("sales history must have %d entries", SalesHistoryLen)}
		}
		for _, n := range p.SalesData {
			if n < 0 {
				return &FieldError{Field: "salesData", Message: "sales history entries must not be negative"}
			}
		}
	}
	return nil
}

// ProductInput is the validated output of the product form.
type ProductInput struct {
	Name             string  `json:"productName"`
	SKU              string  `json:"sku"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	StockQuantity    int     `json:"stockQuantity"`
	Description      string  `json:"description"`
	Active           bool    `json:"active"`
	Satisfaction     int     `json:"satisfaction"`
	DeliveryProgress int     `json:"deliveryProgress"`
	ImageURL         string  `json:"imageUrl"`
}

// NewProduct builds a Product from form input: the SKU is normalized, a fresh
// identifier and creation date are assigned and the sales history starts empty.
func NewProduct(in ProductInput, now time.Time) (Product, error) {
	p := Product{
		ID:               NewRecordID(),
		Name:             strings.TrimSpace(in.Name),
		SKU:              NormalizeSKU(in.SKU),
		Category:         strings.TrimSpace(in.Category),
		Price:            in.Price,
		StockQuantity:    in.StockQuantity,
		Description:      in.Description,
		Active:           in.Active,
		CreatedAt:        now.Format("2006-01-02"),
		Satisfaction:     in.Satisfaction,
		DeliveryProgress: in.DeliveryProgress,
		SalesData:        make([]int, SalesHistoryLen),
		ImageURL:         in.ImageURL,
	}
	if in.Price <= 0 {
		return Product{}, &FieldError{Field: "price", Message: "price must be a positive number"}
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
