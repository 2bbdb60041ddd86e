package domain

import "github.com/shopspring/decimal"

// Child specs are the caller's create-or-update instructions for the
// nested collections of an aggregate. A spec with a non-nil id targets
// an existing row owned by the parent and patches only the non-nil
// fields; a spec without an id creates a brand-new row.

type VariantSpec struct {
	VariantID     *int64
	MaxPrice      *decimal.Decimal
	DiscountPrice *decimal.Decimal
	TotalInStock  *int
	IsInStock     *bool
	IsActive      *bool
	Images        []ImageSpec
}

// IsUpdate reports whether the spec targets an existing variant.
func (s VariantSpec) IsUpdate() bool { return s.VariantID != nil }

type ImageSpec struct {
	ImageID     *int64
	URL         *string
	IsThumbnail *bool
	IsActive    *bool
}

func (s ImageSpec) IsUpdate() bool { return s.ImageID != nil }

type OrderItemSpec struct {
	ItemID           *int64
	ProductVariantID *int64
	PurchasePrice    *decimal.Decimal
	DiscountAmount   *int
	Quantity         *int
}

func (s OrderItemSpec) IsUpdate() bool { return s.ItemID != nil }
