package httphandler

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/soukhub/marketplace/internal/core/domain"
)

type (
	CreateProductRequest struct {
		MerchantID   int64            `json:"merchant_id"`
		CategoryID   int64            `json:"category_id"`
		Name         string           `json:"name"`
		Description  string           `json:"description"`
		Details      string           `json:"details"`
		TotalInStock int              `json:"total_in_stock"`
		IsInStock    *bool            `json:"is_in_stock"`
		IsActive     *bool            `json:"is_active"`
		Variants     []VariantPayload `json:"variants"`
	}

	PatchProductRequest struct {
		CategoryID   *int64           `json:"category_id"`
		Name         *string          `json:"name"`
		Description  *string          `json:"description"`
		Details      *string          `json:"details"`
		TotalInStock *int             `json:"total_in_stock"`
		IsInStock    *bool            `json:"is_in_stock"`
		IsActive     *bool            `json:"is_active"`
		Variants     []VariantPayload `json:"variants"`
	}

	// A VariantPayload is a create-or-update instruction: variant_id
	// present targets an existing variant, absent creates a new one.
	VariantPayload struct {
		VariantID     *int64           `json:"variant_id"`
		MaxPrice      *decimal.Decimal `json:"max_price"`
		DiscountPrice *decimal.Decimal `json:"discount_price"`
		TotalInStock  *int             `json:"total_in_stock"`
		IsInStock     *bool            `json:"is_in_stock"`
		IsActive      *bool            `json:"is_active"`
		Images        []ImagePayload   `json:"images"`
	}

	ImagePayload struct {
		ImageID     *int64  `json:"image_id"`
		URL         *string `json:"url"`
		IsThumbnail *bool   `json:"is_thumbnail"`
		IsActive    *bool   `json:"is_active"`
	}

	ProductResponse struct {
		ID           int64             `json:"id"`
		MerchantID   int64             `json:"merchant_id"`
		CategoryID   int64             `json:"category_id"`
		Name         string            `json:"name"`
		Slug         string            `json:"slug"`
		Description  string            `json:"description"`
		Details      string            `json:"details"`
		TotalInStock int               `json:"total_in_stock"`
		IsInStock    bool              `json:"is_in_stock"`
		IsActive     bool              `json:"is_active"`
		Variants     []VariantResponse `json:"variants"`
		CreatedAt    time.Time         `json:"created_at"`
		UpdatedAt    time.Time         `json:"updated_at"`
	}

	VariantResponse struct {
		ID            int64            `json:"id"`
		MaxPrice      decimal.Decimal  `json:"max_price"`
		DiscountPrice *decimal.Decimal `json:"discount_price"`
		TotalInStock  int              `json:"total_in_stock"`
		IsInStock     bool             `json:"is_in_stock"`
		IsActive      bool             `json:"is_active"`
		Images        []ImageResponse  `json:"images"`
	}

	ImageResponse struct {
		ID          int64  `json:"id"`
		URL         string `json:"url"`
		IsThumbnail bool   `json:"is_thumbnail"`
		IsActive    bool   `json:"is_active"`
	}
)

type (
	CreateOrderRequest struct {
		CustomerID        int64              `json:"customer_id"`
		ShippingAddressID int64              `json:"shipping_address_id"`
		PaymentID         int64              `json:"payment_id"`
		CouponID          *int64             `json:"coupon_id"`
		TotalPaid         decimal.Decimal    `json:"total_paid"`
		BillingStatus     string             `json:"billing_status"`
		ShippingStatus    string             `json:"shipping_status"`
		OrderItems        []OrderItemPayload `json:"order_items"`
	}

	PatchOrderRequest struct {
		ShippingAddressID *int64             `json:"shipping_address_id"`
		PaymentID         *int64             `json:"payment_id"`
		CouponID          *int64             `json:"coupon_id"`
		TotalPaid         *decimal.Decimal   `json:"total_paid"`
		BillingStatus     *string            `json:"billing_status"`
		ShippingStatus    *string            `json:"shipping_status"`
		OrderItems        []OrderItemPayload `json:"order_items"`
	}

	OrderItemPayload struct {
		ItemID           *int64           `json:"item_id"`
		ProductVariantID *int64           `json:"product_variant_id"`
		PurchasePrice    *decimal.Decimal `json:"purchase_price"`
		DiscountAmount   *int             `json:"discount_amount"`
		Quantity         *int             `json:"quantity"`
	}

	OrderResponse struct {
		ID                int64               `json:"id"`
		CustomerID        int64               `json:"customer_id"`
		ShippingAddressID int64               `json:"shipping_address_id"`
		PaymentID         int64               `json:"payment_id"`
		CouponID          *int64              `json:"coupon_id"`
		TotalPaid         decimal.Decimal     `json:"total_paid"`
		BillingStatus     string              `json:"billing_status"`
		ShippingStatus    string              `json:"shipping_status"`
		OrderItems        []OrderItemResponse `json:"order_items"`
		CreatedAt         time.Time           `json:"created_at"`
		UpdatedAt         time.Time           `json:"updated_at"`
	}

	OrderItemResponse struct {
		ID               int64           `json:"id"`
		ProductVariantID int64           `json:"product_variant_id"`
		PurchasePrice    decimal.Decimal `json:"purchase_price"`
		DiscountAmount   int             `json:"discount_amount"`
		Quantity         int             `json:"quantity"`
	}
)

func (r CreateProductRequest) toDomain() (domain.ProductFields, []domain.VariantSpec) {
	fields := domain.ProductFields{
		MerchantID:   r.MerchantID,
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		Details:      r.Details,
		TotalInStock: r.TotalInStock,
		IsInStock:    true,
		IsActive:     true,
	}
	if r.IsInStock != nil {
		fields.IsInStock = *r.IsInStock
	}
	if r.IsActive != nil {
		fields.IsActive = *r.IsActive
	}
	return fields, toVariantSpecs(r.Variants)
}

func (r PatchProductRequest) toDomain() (domain.ProductPatch, []domain.VariantSpec) {
	patch := domain.ProductPatch{
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		Details:      r.Details,
		TotalInStock: r.TotalInStock,
		IsInStock:    r.IsInStock,
		IsActive:     r.IsActive,
	}
	return patch, toVariantSpecs(r.Variants)
}

func toVariantSpecs(vs []VariantPayload) []domain.VariantSpec {
	specs := make([]domain.VariantSpec, len(vs))
	for i, v := range vs {
		specs[i] = domain.VariantSpec{
			VariantID:     v.VariantID,
			MaxPrice:      v.MaxPrice,
			DiscountPrice: v.DiscountPrice,
			TotalInStock:  v.TotalInStock,
			IsInStock:     v.IsInStock,
			IsActive:      v.IsActive,
		}
		for _, img := range v.Images {
			specs[i].Images = append(specs[i].Images, domain.ImageSpec{
				ImageID:     img.ImageID,
				URL:         img.URL,
				IsThumbnail: img.IsThumbnail,
				IsActive:    img.IsActive,
			})
		}
	}
	return specs
}

func toProductResponse(p domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		MerchantID:   p.MerchantID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Details:      p.Details,
		TotalInStock: p.TotalInStock,
		IsInStock:    p.IsInStock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, v := range p.Variants {
		vr := VariantResponse{
			ID:            v.ID,
			MaxPrice:      v.MaxPrice,
			DiscountPrice: v.DiscountPrice,
			TotalInStock:  v.TotalInStock,
			IsInStock:     v.IsInStock,
			IsActive:      v.IsActive,
		}
		for _, img := range v.Images {
			vr.Images = append(vr.Images, ImageResponse{
				ID:          img.ID,
				URL:         img.URL,
				IsThumbnail: img.IsThumbnail,
				IsActive:    img.IsActive,
			})
		}
		resp.Variants = append(resp.Variants, vr)
	}
	return resp
}

func (r CreateOrderRequest) toDomain() (domain.OrderFields, []domain.OrderItemSpec) {
	fields := domain.OrderFields{
		CustomerID:        r.CustomerID,
		ShippingAddressID: r.ShippingAddressID,
		PaymentID:         r.PaymentID,
		CouponID:          r.CouponID,
		TotalPaid:         r.TotalPaid,
		BillingStatus:     domain.BillingStatus(r.BillingStatus),
		ShippingStatus:    domain.ShippingStatus(r.ShippingStatus),
	}
	return fields, toItemSpecs(r.OrderItems)
}

func (r PatchOrderRequest) toDomain() (domain.OrderPatch, []domain.OrderItemSpec) {
	patch := domain.OrderPatch{
		ShippingAddressID: r.ShippingAddressID,
		PaymentID:         r.PaymentID,
		CouponID:          r.CouponID,
		TotalPaid:         r.TotalPaid,
	}
	if r.BillingStatus != nil {
		bs := domain.BillingStatus(*r.BillingStatus)
		patch.BillingStatus = &bs
	}
	if r.ShippingStatus != nil {
		ss := domain.ShippingStatus(*r.ShippingStatus)
		patch.ShippingStatus = &ss
	}
	return patch, toItemSpecs(r.OrderItems)
}

func toItemSpecs(items []OrderItemPayload) []domain.OrderItemSpec {
	specs := make([]domain.OrderItemSpec, len(items))
	for i, it := range items {
		specs[i] = domain.OrderItemSpec{
			ItemID:           it.ItemID,
			ProductVariantID: it.ProductVariantID,
			PurchasePrice:    it.PurchasePrice,
			DiscountAmount:   it.DiscountAmount,
			Quantity:         it.Quantity,
		}
	}
	return specs
}

func toOrderResponse(o domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		ShippingAddressID: o.ShippingAddressID,
		PaymentID:         o.PaymentID,
		CouponID:          o.CouponID,
		TotalPaid:         o.TotalPaid,
		BillingStatus:     string(o.BillingStatus),
		ShippingStatus:    string(o.ShippingStatus),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.OrderItems = append(resp.OrderItems, OrderItemResponse{
			ID:               it.ID,
			ProductVariantID: it.ProductVariantID,
			PurchasePrice:    it.PurchasePrice,
			DiscountAmount:   it.DiscountAmount,
			Quantity:         it.Quantity,
		})
	}
	return resp
}
