package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillingStatus string

const (
	BillingPaid   BillingStatus = "Paid"
	BillingUnpaid BillingStatus = "Unpaid"
)

type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "Pending"
	ShippingDelivered ShippingStatus = "Delivered"
)

type (
	// An Order aggregates its items the same way a product
	// aggregates variants, without the stock-sum rule.
	Order struct {
		ID                int64
		CustomerID        int64
		ShippingAddressID int64
		PaymentID         int64
		CouponID          *int64
		TotalPaid         decimal.Decimal
		BillingStatus     BillingStatus
		ShippingStatus    ShippingStatus
		Items             []OrderItem
		CreatedAt         time.Time
		UpdatedAt         time.Time
	}

	OrderItem struct {
		ID               int64
		OrderID          int64
		ProductVariantID int64
		PurchasePrice    decimal.Decimal
		DiscountAmount   int
		Quantity         int
	}
)

type OrderFields struct {
	CustomerID        int64
	ShippingAddressID int64
	PaymentID         int64
	CouponID          *int64
	TotalPaid         decimal.Decimal
	BillingStatus     BillingStatus
	ShippingStatus    ShippingStatus
}

type OrderPatch struct {
	ShippingAddressID *int64
	PaymentID         *int64
	CouponID          *int64
	TotalPaid         *decimal.Decimal
	BillingStatus     *BillingStatus
	ShippingStatus    *ShippingStatus
}

func (p OrderPatch) Empty() bool {
	return p.ShippingAddressID == nil && p.PaymentID == nil &&
		p.CouponID == nil && p.TotalPaid == nil &&
		p.BillingStatus == nil && p.ShippingStatus == nil
}

type OrderItemFields struct {
	ProductVariantID int64
	PurchasePrice    decimal.Decimal
	DiscountAmount   int
	Quantity         int
}

type OrderItemPatch struct {
	ProductVariantID *int64
	PurchasePrice    *decimal.Decimal
	DiscountAmount   *int
	Quantity         *int
}
