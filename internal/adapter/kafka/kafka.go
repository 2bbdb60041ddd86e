package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func productSavedToSchemaV1(p domain.Product) (s schema.ProductSavedV1) {
	s.ProductID = p.ID
	s.MerchantID = p.MerchantID
	s.CategoryID = p.CategoryID
	s.Name = p.Name
	s.Slug = p.Slug
	s.TotalInStock = int64(p.TotalInStock)
	s.IsInStock = p.IsInStock
	s.IsActive = p.IsActive

	s.Variants = make([]schema.ProductVariantV1, len(p.Variants))
	for i, v := range p.Variants {
		s.Variants[i] = schema.ProductVariantV1{
			VariantID:     v.ID,
			MaxPrice:      v.MaxPrice.String(),
			DiscountPrice: decimalString(v.DiscountPrice),
			TotalInStock:  int64(v.TotalInStock),
			IsInStock:     v.IsInStock,
			IsActive:      v.IsActive,
		}
	}
	return s
}

func orderSavedToSchemaV1(o domain.Order) (s schema.OrderSavedV1) {
	s.OrderID = o.ID
	s.CustomerID = o.CustomerID
	s.TotalPaid = o.TotalPaid.String()
	s.BillingStatus = string(o.BillingStatus)
	s.ShippingStatus = string(o.ShippingStatus)

	s.Items = make([]schema.OrderItemV1, len(o.Items))
	for i, it := range o.Items {
		s.Items[i] = schema.OrderItemV1{
			ItemID:           it.ID,
			ProductVariantID: it.ProductVariantID,
			PurchasePrice:    it.PurchasePrice.String(),
			DiscountAmount:   int64(it.DiscountAmount),
			Quantity:         int64(it.Quantity),
		}
	}
	return s
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
