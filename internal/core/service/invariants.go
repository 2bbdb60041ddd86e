package service

import (
	"github.com/shopspring/decimal"
	"github.com/soukhub/marketplace/internal/core/domain"
)

// A PriceSnapshot carries the persisted price pair of a variant, used
// to evaluate the discount rule when a partial update supplies only one
// side of the pair.
type PriceSnapshot struct {
	MaxPrice      decimal.Decimal
	DiscountPrice *decimal.Decimal
}

// CheckVariantPrice reports whether the resulting price pair satisfies
// discount <= max. Supplied values win over the snapshot; for a new
// variant (nil snapshot) a missing side of the pair is simply absent
// and cannot violate the rule.
func CheckVariantPrice(
	maxPrice, discountPrice *decimal.Decimal, existing *PriceSnapshot,
) bool {
	if maxPrice != nil && discountPrice != nil {
		return !discountPrice.GreaterThan(*maxPrice)
	}
	if existing == nil {
		return true
	}
	if maxPrice != nil && existing.DiscountPrice != nil &&
		existing.DiscountPrice.GreaterThan(*maxPrice) {
		return false
	}
	if discountPrice != nil && discountPrice.GreaterThan(existing.MaxPrice) {
		return false
	}
	return true
}

// A StockSum is the projected variants stock after applying incoming
// specs on top of the persisted variants.
type StockSum struct {
	// Total is the resulting sum over all variants.
	Total int
	// Carried is the portion held by persisted variants no incoming
	// spec references; the difference between the product total and
	// Carried is what the incoming specs may still allocate.
	Carried int
}

// VariantStockSum projects the stock sum. Each persisted variant not
// referenced by a spec keeps its stored value; each spec contributes
// its supplied value, falling back to the stored value when a partial
// update omits the field.
func VariantStockSum(
	specs []domain.VariantSpec, existing []domain.ProductVariant,
) StockSum {
	byID := make(map[int64]domain.ProductVariant, len(existing))
	for _, v := range existing {
		byID[v.ID] = v
	}

	referenced := make(map[int64]bool, len(specs))
	var total int
	for _, s := range specs {
		if s.VariantID != nil {
			referenced[*s.VariantID] = true
		}
		switch {
		case s.TotalInStock != nil:
			total += *s.TotalInStock
		case s.VariantID != nil:
			if v, ok := byID[*s.VariantID]; ok {
				total += v.TotalInStock
			}
		}
	}

	var carried int
	for _, v := range existing {
		if !referenced[v.ID] {
			carried += v.TotalInStock
		}
	}
	total += carried

	return StockSum{Total: total, Carried: carried}
}
