package schema_test

import (
	"context"
	"testing"

	"github.com/soukhub/marketplace/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeProductSavedV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeProductSavedV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeProductSavedV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductSavedSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeProductSavedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductSavedSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeProductSavedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		discount := "350.00"
		productValue1 := schema.ProductSavedV1{
			ProductID:    7,
			MerchantID:   3,
			CategoryID:   11,
			Name:         "testName",
			Slug:         "testname",
			TotalInStock: 50,
			IsInStock:    true,
			IsActive:     true,
			Variants: []schema.ProductVariantV1{
				{
					VariantID:     21,
					MaxPrice:      "400.00",
					DiscountPrice: &discount,
					TotalInStock:  20,
					IsInStock:     true,
					IsActive:      true,
				},
			},
		}

		encodedData, err := serde.Encode(productValue1)
		require.NoError(t, err)

		var productValue2 schema.ProductSavedV1
		err = serde.Decode(encodedData, &productValue2)
		require.NoError(t, err)

		assert.Equal(t, productValue1.ProductID, productValue2.ProductID)
		assert.Equal(t, productValue1.Slug, productValue2.Slug)
		assert.Equal(t, productValue1.TotalInStock, productValue2.TotalInStock)

		require.Len(t, productValue2.Variants, len(productValue1.Variants))
		for i, v := range productValue2.Variants {
			assert.Equal(t, productValue1.Variants[i], v)
		}
	})
}

func TestSerdeOrderSavedV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderSavedV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 2
		subject := "testOrders-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderSavedSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeOrderSavedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		orderValue1 := schema.OrderSavedV1{
			OrderID:        42,
			CustomerID:     8,
			TotalPaid:      "1234.50",
			BillingStatus:  "Paid",
			ShippingStatus: "Delivered",
			Items: []schema.OrderItemV1{
				{
					ItemID:           101,
					ProductVariantID: 21,
					PurchasePrice:    "400.00",
					DiscountAmount:   10,
					Quantity:         2,
				},
			},
		}

		encodedData, err := serde.Encode(orderValue1)
		require.NoError(t, err)

		var orderValue2 schema.OrderSavedV1
		err = serde.Decode(encodedData, &orderValue2)
		require.NoError(t, err)

		assert.Equal(t, orderValue1.OrderID, orderValue2.OrderID)
		assert.Equal(t, orderValue1.TotalPaid, orderValue2.TotalPaid)
		assert.Equal(t, orderValue1.BillingStatus, orderValue2.BillingStatus)

		require.Len(t, orderValue2.Items, len(orderValue1.Items))
		for i, v := range orderValue2.Items {
			assert.Equal(t, orderValue1.Items[i], v)
		}
	})
}
