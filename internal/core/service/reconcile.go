package service

import (
	"context"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
)

// Reconciliation applies a list of child specs against the persisted
// children of one parent: a spec carrying an id patches that child, a
// spec without one inserts a new child. Validation runs over the whole
// list before the first write so a bad spec never leaves partial child
// rows behind even without the surrounding transaction.

func validateVariantSpecs(
	specs []domain.VariantSpec, persisted []domain.ProductVariant,
) error {
	owned := make(map[int64]domain.ProductVariant, len(persisted))
	ownedImages := make(map[int64]bool)
	for _, v := range persisted {
		owned[v.ID] = v
		// image ownership spans the whole product, not just the
		// variant being edited
		for _, img := range v.Images {
			ownedImages[img.ID] = true
		}
	}

	for _, s := range specs {
		var snapshot *PriceSnapshot
		if s.IsUpdate() {
			v, ok := owned[*s.VariantID]
			if !ok {
				return &domain.OwnershipError{Kind: "variant", ID: *s.VariantID}
			}
			snapshot = &PriceSnapshot{
				MaxPrice:      v.MaxPrice,
				DiscountPrice: v.DiscountPrice,
			}
		} else {
			if s.MaxPrice == nil {
				return domain.RequiredFieldError("variants.max_price")
			}
			if s.TotalInStock == nil {
				return domain.RequiredFieldError("variants.total_in_stock")
			}
		}

		if !CheckVariantPrice(s.MaxPrice, s.DiscountPrice, snapshot) {
			return domain.DiscountPriceError()
		}

		for _, img := range s.Images {
			if s.IsUpdate() && img.IsUpdate() {
				if !ownedImages[*img.ImageID] {
					return &domain.OwnershipError{Kind: "image", ID: *img.ImageID}
				}
				continue
			}
			// a new image, or any image under a brand-new variant
			if img.URL == nil {
				return domain.RequiredFieldError("variants.images.url")
			}
		}
	}
	return nil
}

func applyVariantSpecs(
	ctx context.Context,
	tx port.ProductTx,
	productID int64,
	specs []domain.VariantSpec,
) error {
	for _, s := range specs {
		if s.IsUpdate() {
			err := tx.UpdateVariantFields(ctx, *s.VariantID, domain.VariantPatch{
				MaxPrice:      s.MaxPrice,
				DiscountPrice: s.DiscountPrice,
				TotalInStock:  s.TotalInStock,
				IsInStock:     s.IsInStock,
				IsActive:      s.IsActive,
			})
			if err != nil {
				return err
			}
			if err := applyImageSpecs(ctx, tx, *s.VariantID, s.Images); err != nil {
				return err
			}
			continue
		}

		fields := domain.VariantFields{
			MaxPrice:      *s.MaxPrice,
			DiscountPrice: s.DiscountPrice,
			TotalInStock:  *s.TotalInStock,
			IsInStock:     true,
			IsActive:      true,
		}
		if s.IsInStock != nil {
			fields.IsInStock = *s.IsInStock
		}
		if s.IsActive != nil {
			fields.IsActive = *s.IsActive
		}
		variantID, err := tx.InsertVariant(ctx, productID, fields)
		if err != nil {
			return err
		}
		for _, img := range s.Images {
			if err := insertImage(ctx, tx, variantID, img); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyImageSpecs(
	ctx context.Context,
	tx port.ProductTx,
	variantID int64,
	specs []domain.ImageSpec,
) error {
	for _, img := range specs {
		if img.IsUpdate() {
			err := tx.UpdateVariantImageFields(ctx, *img.ImageID, domain.ImagePatch{
				URL:         img.URL,
				IsThumbnail: img.IsThumbnail,
				IsActive:    img.IsActive,
			})
			if err != nil {
				return err
			}
			continue
		}
		if err := insertImage(ctx, tx, variantID, img); err != nil {
			return err
		}
	}
	return nil
}

func insertImage(
	ctx context.Context, tx port.ProductTx, variantID int64, img domain.ImageSpec,
) error {
	fields := domain.ImageFields{URL: *img.URL, IsActive: true}
	if img.IsThumbnail != nil {
		fields.IsThumbnail = *img.IsThumbnail
	}
	if img.IsActive != nil {
		fields.IsActive = *img.IsActive
	}
	_, err := tx.InsertVariantImage(ctx, variantID, fields)
	return err
}

func validateItemSpecs(
	specs []domain.OrderItemSpec, persisted []domain.OrderItem,
) error {
	owned := make(map[int64]bool, len(persisted))
	for _, it := range persisted {
		owned[it.ID] = true
	}

	for _, s := range specs {
		if s.IsUpdate() {
			if !owned[*s.ItemID] {
				return &domain.OwnershipError{Kind: "item", ID: *s.ItemID}
			}
			continue
		}
		if s.ProductVariantID == nil {
			return domain.RequiredFieldError("order_items.product_variant_id")
		}
		if s.PurchasePrice == nil {
			return domain.RequiredFieldError("order_items.purchase_price")
		}
		if s.Quantity == nil {
			return domain.RequiredFieldError("order_items.quantity")
		}
	}
	return nil
}

func applyItemSpecs(
	ctx context.Context,
	tx port.OrderTx,
	orderID int64,
	specs []domain.OrderItemSpec,
) error {
	for _, s := range specs {
		if s.IsUpdate() {
			err := tx.UpdateItemFields(ctx, *s.ItemID, domain.OrderItemPatch{
				ProductVariantID: s.ProductVariantID,
				PurchasePrice:    s.PurchasePrice,
				DiscountAmount:   s.DiscountAmount,
				Quantity:         s.Quantity,
			})
			if err != nil {
				return err
			}
			continue
		}

		fields := domain.OrderItemFields{
			ProductVariantID: *s.ProductVariantID,
			PurchasePrice:    *s.PurchasePrice,
			Quantity:         *s.Quantity,
		}
		if s.DiscountAmount != nil {
			fields.DiscountAmount = *s.DiscountAmount
		}
		if _, err := tx.InsertItem(ctx, orderID, fields); err != nil {
			return err
		}
	}
	return nil
}
