package schema

// Event payloads published after a committed aggregate write. Prices
// travel as decimal strings to keep exact values across consumers.

const ProductSavedSchemaTextV1 = `{
	"type": "record",
	"namespace": "marketplace",
	"name": "product_saved",
	"fields": [
		{"name": "product_id", "type": "long"},
		{"name": "merchant_id", "type": "long"},
		{"name": "category_id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "slug", "type": "string"},
		{"name": "total_in_stock", "type": "long"},
		{"name": "is_in_stock", "type": "boolean"},
		{"name": "is_active", "type": "boolean"},
		{"name": "variants", "type": {"type": "array", "items": {
			"type": "record",
			"name": "product_variant",
			"fields": [
				{"name": "variant_id", "type": "long"},
				{"name": "max_price", "type": "string"},
				{"name": "discount_price", "type": ["null", "string"], "default": null},
				{"name": "total_in_stock", "type": "long"},
				{"name": "is_in_stock", "type": "boolean"},
				{"name": "is_active", "type": "boolean"}
			]
		}}}
	]
}`

type (
	ProductSavedV1 struct {
		ProductID    int64              `avro:"product_id"`
		MerchantID   int64              `avro:"merchant_id"`
		CategoryID   int64              `avro:"category_id"`
		Name         string             `avro:"name"`
		Slug         string             `avro:"slug"`
		TotalInStock int64              `avro:"total_in_stock"`
		IsInStock    bool               `avro:"is_in_stock"`
		IsActive     bool               `avro:"is_active"`
		Variants     []ProductVariantV1 `avro:"variants"`
	}

	ProductVariantV1 struct {
		VariantID     int64   `avro:"variant_id"`
		MaxPrice      string  `avro:"max_price"`
		DiscountPrice *string `avro:"discount_price"`
		TotalInStock  int64   `avro:"total_in_stock"`
		IsInStock     bool    `avro:"is_in_stock"`
		IsActive      bool    `avro:"is_active"`
	}
)

const OrderSavedSchemaTextV1 = `{
	"type": "record",
	"namespace": "marketplace",
	"name": "order_saved",
	"fields": [
		{"name": "order_id", "type": "long"},
		{"name": "customer_id", "type": "long"},
		{"name": "total_paid", "type": "string"},
		{"name": "billing_status", "type": "string"},
		{"name": "shipping_status", "type": "string"},
		{"name": "items", "type": {"type": "array", "items": {
			"type": "record",
			"name": "order_item",
			"fields": [
				{"name": "item_id", "type": "long"},
				{"name": "product_variant_id", "type": "long"},
				{"name": "purchase_price", "type": "string"},
				{"name": "discount_amount", "type": "long"},
				{"name": "quantity", "type": "long"}
			]
		}}}
	]
}`

type (
	OrderSavedV1 struct {
		OrderID        int64         `avro:"order_id"`
		CustomerID     int64         `avro:"customer_id"`
		TotalPaid      string        `avro:"total_paid"`
		BillingStatus  string        `avro:"billing_status"`
		ShippingStatus string        `avro:"shipping_status"`
		Items          []OrderItemV1 `avro:"items"`
	}

	OrderItemV1 struct {
		ItemID           int64  `avro:"item_id"`
		ProductVariantID int64  `avro:"product_variant_id"`
		PurchasePrice    string `avro:"purchase_price"`
		DiscountAmount   int64  `avro:"discount_amount"`
		Quantity         int64  `avro:"quantity"`
	}
)
