package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
	"github.com/soukhub/marketplace/pkg/retry"
)

var _ port.ProductWriter = (*ProductService)(nil)

// A ProductService writes product aggregates: the product row, its
// variants and their images in one transaction, enforcing the stock-sum
// and discount-price rules and assigning a unique slug on creation.
type ProductService struct {
	repo   port.ProductRepository
	events port.CatalogEventsProducer
}

// NewProductService constructs the service. events may be nil when
// event publishing is not wired.
func NewProductService(
	repo port.ProductRepository, events port.CatalogEventsProducer,
) ProductService {
	return ProductService{repo, events}
}

func (s ProductService) CreateProduct(
	ctx context.Context,
	fields domain.ProductFields,
	variants []domain.VariantSpec,
) (domain.Product, error) {
	const op = "ProductService.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProductFields(fields); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateVariantSpecs(variants, nil); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if sum := VariantStockSum(variants, nil); sum.Total > fields.TotalInStock {
		err := domain.StockSumError(
			sum.Total, fields.TotalInStock, fields.TotalInStock-sum.Carried,
		)
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := retry.DoWithResult(ctx, conflictRetry(),
		func() (domain.Product, error) {
			return s.createTx(ctx, fields, variants)
		})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notifySaved(ctx, product)
	return product, nil
}

func (s ProductService) createTx(
	ctx context.Context,
	fields domain.ProductFields,
	variants []domain.VariantSpec,
) (domain.Product, error) {
	var product domain.Product
	err := s.repo.InTx(ctx, func(tx port.ProductTx) error {
		productID, err := tx.InsertProduct(ctx, fields)
		if err != nil {
			return err
		}

		// the row id seeds collision suffixes, so the slug is
		// computed after the insert, under the same transaction
		slug, err := UniqueSlug(fields.Name, productID,
			func(candidate string) (int64, bool, error) {
				return tx.SlugOwner(ctx, candidate)
			})
		if err != nil {
			return err
		}
		if err := tx.SetProductSlug(ctx, productID, slug); err != nil {
			return err
		}

		if err := applyVariantSpecs(ctx, tx, productID, variants); err != nil {
			return err
		}

		product, err = tx.GetProduct(ctx, productID)
		return err
	})
	return product, err
}

func (s ProductService) UpdateProduct(
	ctx context.Context,
	productID int64,
	patch domain.ProductPatch,
	variants []domain.VariantSpec,
) (domain.Product, error) {
	const op = "ProductService.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProductPatch(patch); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := retry.DoWithResult(ctx, conflictRetry(),
		func() (domain.Product, error) {
			return s.updateTx(ctx, productID, patch, variants)
		})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notifySaved(ctx, product)
	return product, nil
}

func (s ProductService) updateTx(
	ctx context.Context,
	productID int64,
	patch domain.ProductPatch,
	variants []domain.VariantSpec,
) (domain.Product, error) {
	var product domain.Product
	err := s.repo.InTx(ctx, func(tx port.ProductTx) error {
		current, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		persisted, err := tx.ListVariants(ctx, productID)
		if err != nil {
			return err
		}

		if err := validateVariantSpecs(variants, persisted); err != nil {
			return err
		}

		limit := current.TotalInStock
		if patch.TotalInStock != nil {
			limit = *patch.TotalInStock
		}
		if sum := VariantStockSum(variants, persisted); sum.Total > limit {
			return domain.StockSumError(sum.Total, limit, limit-sum.Carried)
		}

		if err := applyVariantSpecs(ctx, tx, productID, variants); err != nil {
			return err
		}

		// the slug stays as created even when the name changes,
		// keeping published URLs stable
		if !patch.Empty() {
			if err := tx.UpdateProductFields(ctx, productID, patch); err != nil {
				return err
			}
		}

		product, err = tx.GetProduct(ctx, productID)
		return err
	})
	return product, err
}

func (s ProductService) notifySaved(ctx context.Context, p domain.Product) {
	const op = "ProductService.notifySaved"
	if s.events == nil {
		return
	}
	if err := s.events.ProduceProductSaved(ctx, p); err != nil {
		slog.Error("failed to produce product event",
			"op", op, "productID", p.ID, "err", err)
	}
}

func validateProductFields(fields domain.ProductFields) error {
	switch {
	case fields.MerchantID <= 0:
		return domain.RequiredFieldError("merchant_id")
	case fields.CategoryID <= 0:
		return domain.RequiredFieldError("category_id")
	case fields.Name == "":
		return domain.RequiredFieldError("name")
	case fields.Description == "":
		return domain.RequiredFieldError("description")
	case fields.TotalInStock < 0:
		return &domain.FieldError{
			Field: "total_in_stock", Message: "must not be negative",
		}
	}
	return nil
}

func validateProductPatch(patch domain.ProductPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return &domain.FieldError{Field: "name", Message: "must not be blank"}
	}
	if patch.TotalInStock != nil && *patch.TotalInStock < 0 {
		return &domain.FieldError{
			Field: "total_in_stock", Message: "must not be negative",
		}
	}
	return nil
}

func conflictRetry() retry.Config {
	return retry.Config{
		MaxAttempts: 2,
		ShouldRetry: func(err error) bool {
			return errors.Is(err, domain.ErrConflict)
		},
	}
}
