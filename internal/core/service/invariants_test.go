package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/service"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestCheckVariantPrice(t *testing.T) {
	tests := []struct {
		name     string
		maxPrice *decimal.Decimal
		discount *decimal.Decimal
		existing *service.PriceSnapshot
		want     bool
	}{
		{
			name:     "NewVariantValidPair",
			maxPrice: decPtr("400.00"),
			discount: decPtr("350.00"),
			want:     true,
		},
		{
			name:     "NewVariantEqualPair",
			maxPrice: decPtr("400.00"),
			discount: decPtr("400.00"),
			want:     true,
		},
		{
			name:     "NewVariantDiscountAboveMax",
			maxPrice: decPtr("40.00"),
			discount: decPtr("50.00"),
			want:     false,
		},
		{
			name:     "NewVariantNoDiscount",
			maxPrice: decPtr("400.00"),
			want:     true,
		},
		{
			name:     "PatchDiscountAgainstStoredMax",
			discount: decPtr("500.00"),
			existing: &service.PriceSnapshot{MaxPrice: dec("400.00")},
			want:     false,
		},
		{
			name:     "PatchDiscountWithinStoredMax",
			discount: decPtr("350.00"),
			existing: &service.PriceSnapshot{MaxPrice: dec("400.00")},
			want:     true,
		},
		{
			name:     "PatchMaxBelowStoredDiscount",
			maxPrice: decPtr("300.00"),
			existing: &service.PriceSnapshot{
				MaxPrice:      dec("400.00"),
				DiscountPrice: decPtr("350.00"),
			},
			want: false,
		},
		{
			name:     "PatchMaxAboveStoredDiscount",
			maxPrice: decPtr("360.00"),
			existing: &service.PriceSnapshot{
				MaxPrice:      dec("400.00"),
				DiscountPrice: decPtr("350.00"),
			},
			want: true,
		},
		{
			name:     "SuppliedPairWinsOverSnapshot",
			maxPrice: decPtr("100.00"),
			discount: decPtr("90.00"),
			existing: &service.PriceSnapshot{
				MaxPrice:      dec("50.00"),
				DiscountPrice: decPtr("45.00"),
			},
			want: true,
		},
		{
			name:     "PatchNeitherSide",
			existing: &service.PriceSnapshot{MaxPrice: dec("400.00")},
			want:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := service.CheckVariantPrice(tc.maxPrice, tc.discount, tc.existing)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVariantStockSum(t *testing.T) {
	existing := []domain.ProductVariant{
		{ID: 1, TotalInStock: 10},
		{ID: 2, TotalInStock: 10},
	}

	t.Run("CreateOnly", func(t *testing.T) {
		specs := []domain.VariantSpec{
			{TotalInStock: intPtr(5)},
			{TotalInStock: intPtr(15)},
		}
		sum := service.VariantStockSum(specs, nil)
		assert.Equal(t, 20, sum.Total)
		assert.Zero(t, sum.Carried)
	})

	t.Run("UnreferencedVariantsCarryStoredValues", func(t *testing.T) {
		specs := []domain.VariantSpec{
			{TotalInStock: intPtr(40)},
		}
		sum := service.VariantStockSum(specs, existing)
		assert.Equal(t, 60, sum.Total)
		assert.Equal(t, 20, sum.Carried)
	})

	t.Run("ReferencedVariantUsesSuppliedValue", func(t *testing.T) {
		specs := []domain.VariantSpec{
			{VariantID: int64Ptr(1), TotalInStock: intPtr(25)},
		}
		sum := service.VariantStockSum(specs, existing)
		assert.Equal(t, 35, sum.Total)
		assert.Equal(t, 10, sum.Carried)
	})

	t.Run("PartialPatchFallsBackToStoredValue", func(t *testing.T) {
		specs := []domain.VariantSpec{
			{VariantID: int64Ptr(1), IsActive: boolPtr(false)},
		}
		sum := service.VariantStockSum(specs, existing)
		assert.Equal(t, 20, sum.Total)
		assert.Equal(t, 10, sum.Carried)
	})

	t.Run("NoSpecs", func(t *testing.T) {
		sum := service.VariantStockSum(nil, existing)
		assert.Equal(t, 20, sum.Total)
		assert.Equal(t, 20, sum.Carried)
	})
}

func boolPtr(v bool) *bool { return &v }
