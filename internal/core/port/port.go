package port

import (
	"context"

	"github.com/soukhub/marketplace/internal/core/domain"
)

// ProductWriter is the inbound port for atomic product aggregate writes.
type ProductWriter interface {
	CreateProduct(
		ctx context.Context,
		fields domain.ProductFields,
		variants []domain.VariantSpec,
	) (domain.Product, error)
	UpdateProduct(
		ctx context.Context,
		productID int64,
		patch domain.ProductPatch,
		variants []domain.VariantSpec,
	) (domain.Product, error)
}

// OrderWriter is the inbound port for atomic order aggregate writes.
type OrderWriter interface {
	CreateOrder(
		ctx context.Context,
		fields domain.OrderFields,
		items []domain.OrderItemSpec,
	) (domain.Order, error)
	UpdateOrder(
		ctx context.Context,
		orderID int64,
		patch domain.OrderPatch,
		items []domain.OrderItemSpec,
	) (domain.Order, error)
}

// ProductRepository runs one aggregate write inside a single storage
// transaction. fn failing rolls every write of the unit back.
type ProductRepository interface {
	InTx(ctx context.Context, fn func(tx ProductTx) error) error
}

// ProductTx is the transaction-scoped persistence surface for the
// product aggregate. GetProductForUpdate locks the parent row, so two
// writers of the same product serialize at the storage layer.
type ProductTx interface {
	InsertProduct(ctx context.Context, fields domain.ProductFields) (int64, error)
	GetProductForUpdate(ctx context.Context, productID int64) (domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
	UpdateProductFields(ctx context.Context, productID int64, patch domain.ProductPatch) error
	SetProductSlug(ctx context.Context, productID int64, slug string) error
	SlugOwner(ctx context.Context, slug string) (ownerID int64, exists bool, err error)
	ListVariants(ctx context.Context, productID int64) ([]domain.ProductVariant, error)
	InsertVariant(ctx context.Context, productID int64, fields domain.VariantFields) (int64, error)
	UpdateVariantFields(ctx context.Context, variantID int64, patch domain.VariantPatch) error
	InsertVariantImage(ctx context.Context, variantID int64, fields domain.ImageFields) (int64, error)
	UpdateVariantImageFields(ctx context.Context, imageID int64, patch domain.ImagePatch) error
}

type OrderRepository interface {
	InTx(ctx context.Context, fn func(tx OrderTx) error) error
}

type OrderTx interface {
	InsertOrder(ctx context.Context, fields domain.OrderFields) (int64, error)
	GetOrderForUpdate(ctx context.Context, orderID int64) (domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	UpdateOrderFields(ctx context.Context, orderID int64, patch domain.OrderPatch) error
	ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	InsertItem(ctx context.Context, orderID int64, fields domain.OrderItemFields) (int64, error)
	UpdateItemFields(ctx context.Context, itemID int64, patch domain.OrderItemPatch) error
}

// CatalogEventsProducer publishes committed aggregates. The write
// coordinators call it after commit; a produce failure never rolls the
// write back.
type CatalogEventsProducer interface {
	ProduceProductSaved(ctx context.Context, p domain.Product) error
	ProduceOrderSaved(ctx context.Context, o domain.Order) error
}
