package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// A Product aggregates its variants; every write of the aggregate
	// is atomic and keeps the variants stock sum within TotalInStock.
	Product struct {
		ID           int64
		MerchantID   int64
		CategoryID   int64
		Name         string
		Slug         string
		Description  string
		Details      string
		TotalInStock int
		IsInStock    bool
		IsActive     bool
		Variants     []ProductVariant
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// A ProductVariant holds price and stock for one sellable
	// combination of a product.
	ProductVariant struct {
		ID            int64
		ProductID     int64
		MaxPrice      decimal.Decimal
		DiscountPrice *decimal.Decimal
		TotalInStock  int
		IsInStock     bool
		IsActive      bool
		Images        []VariantImage
	}

	VariantImage struct {
		ID          int64
		VariantID   int64
		URL         string
		IsThumbnail bool
		IsActive    bool
	}
)

// ActualPrice returns the discount price when set, the max price otherwise.
func (v ProductVariant) ActualPrice() decimal.Decimal {
	if v.DiscountPrice != nil {
		return *v.DiscountPrice
	}
	return v.MaxPrice
}

// ProductFields carries the full field set for creating a product row.
type ProductFields struct {
	MerchantID   int64
	CategoryID   int64
	Name         string
	Description  string
	Details      string
	TotalInStock int
	IsInStock    bool
	IsActive     bool
}

// ProductPatch carries a partial update of product fields.
// Nil means "leave the persisted value unchanged".
type ProductPatch struct {
	CategoryID   *int64
	Name         *string
	Description  *string
	Details      *string
	TotalInStock *int
	IsInStock    *bool
	IsActive     *bool
}

func (p ProductPatch) Empty() bool {
	return p.CategoryID == nil && p.Name == nil && p.Description == nil &&
		p.Details == nil && p.TotalInStock == nil && p.IsInStock == nil &&
		p.IsActive == nil
}

type VariantFields struct {
	MaxPrice      decimal.Decimal
	DiscountPrice *decimal.Decimal
	TotalInStock  int
	IsInStock     bool
	IsActive      bool
}

type VariantPatch struct {
	MaxPrice      *decimal.Decimal
	DiscountPrice *decimal.Decimal
	TotalInStock  *int
	IsInStock     *bool
	IsActive      *bool
}

type ImageFields struct {
	URL         string
	IsThumbnail bool
	IsActive    bool
}

type ImagePatch struct {
	URL         *string
	IsThumbnail *bool
	IsActive    *bool
}
