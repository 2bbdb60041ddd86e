package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
)

var _ port.ProductRepository = (*ProductsRepository)(nil)

// A ProductsRepository persists product aggregates. Every write runs
// through InTx; the parent row is locked before children are touched.
type ProductsRepository struct {
	db sqldbTx
}

func NewProductsRepository(db sqldbTx) ProductsRepository {
	return ProductsRepository{db}
}

func (r ProductsRepository) InTx(
	ctx context.Context, fn func(tx port.ProductTx) error,
) error {
	const op = "ProductsRepository.InTx"
	return inTx(ctx, r.db, op, func(tx *sql.Tx) error {
		return fn(productTx{tx})
	})
}

type productTx struct {
	tx *sql.Tx
}

func (t productTx) InsertProduct(
	ctx context.Context, f domain.ProductFields,
) (int64, error) {
	const op = "productTx.InsertProduct"

	query := `
		INSERT INTO products (
			merchant_id, category_id, name, description, details,
			total_in_stock, is_in_stock, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		f.MerchantID, f.CategoryID, f.Name, f.Description, f.Details,
		f.TotalInStock, f.IsInStock, f.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return id, nil
}

const productColumns = `
	id, merchant_id, category_id, name, COALESCE(slug, ''), description,
	details, total_in_stock, is_in_stock, is_active, created_at, updated_at`

func (t productTx) GetProductForUpdate(
	ctx context.Context, productID int64,
) (domain.Product, error) {
	const op = "productTx.GetProductForUpdate"
	query := `SELECT` + productColumns + `
		FROM products WHERE id = $1 FOR UPDATE;`
	return t.scanProduct(ctx, op, query, productID)
}

func (t productTx) GetProduct(
	ctx context.Context, productID int64,
) (domain.Product, error) {
	const op = "productTx.GetProduct"
	query := `SELECT` + productColumns + `
		FROM products WHERE id = $1;`

	p, err := t.scanProduct(ctx, op, query, productID)
	if err != nil {
		return domain.Product{}, err
	}

	p.Variants, err = t.ListVariants(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (t productTx) scanProduct(
	ctx context.Context, op, query string, productID int64,
) (domain.Product, error) {
	var p domain.Product
	err := t.tx.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.MerchantID, &p.CategoryID, &p.Name, &p.Slug,
		&p.Description, &p.Details, &p.TotalInStock, &p.IsInStock,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return p, nil
}

func (t productTx) UpdateProductFields(
	ctx context.Context, productID int64, patch domain.ProductPatch,
) error {
	const op = "productTx.UpdateProductFields"

	var b patchBuilder
	b.add("category_id", patch.CategoryID)
	b.add("name", patch.Name)
	b.add("description", patch.Description)
	b.add("details", patch.Details)
	b.add("total_in_stock", patch.TotalInStock)
	b.add("is_in_stock", patch.IsInStock)
	b.add("is_active", patch.IsActive)

	query, args := b.update("products", productID)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return nil
}

func (t productTx) SetProductSlug(
	ctx context.Context, productID int64, slug string,
) error {
	const op = "productTx.SetProductSlug"

	query := `UPDATE products SET slug = $1 WHERE id = $2;`
	// a unique index on slug backstops the in-transaction check;
	// classifyErr turns its violation into a retryable conflict
	if _, err := t.tx.ExecContext(ctx, query, slug, productID); err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return nil
}

func (t productTx) SlugOwner(
	ctx context.Context, slug string,
) (int64, bool, error) {
	const op = "productTx.SlugOwner"

	query := `SELECT id FROM products WHERE slug = $1 ORDER BY id DESC LIMIT 1;`

	var ownerID int64
	err := t.tx.QueryRowContext(ctx, query, slug).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return ownerID, true, nil
}

func (t productTx) ListVariants(
	ctx context.Context, productID int64,
) ([]domain.ProductVariant, error) {
	const op = "productTx.ListVariants"

	query := `
		SELECT id, product_id, max_price, discount_price,
			total_in_stock, is_in_stock, is_active
		FROM product_variants
		WHERE product_id = $1 ORDER BY id;`

	rows, err := t.tx.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	defer rows.Close()

	var variants []domain.ProductVariant
	byID := make(map[int64]int)
	for rows.Next() {
		var (
			v        domain.ProductVariant
			discount decimal.NullDecimal
		)
		err := rows.Scan(
			&v.ID, &v.ProductID, &v.MaxPrice, &discount,
			&v.TotalInStock, &v.IsInStock, &v.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if discount.Valid {
			d := discount.Decimal
			v.DiscountPrice = &d
		}
		byID[v.ID] = len(variants)
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classifyErr(err))
	}

	if err := t.attachImages(ctx, productID, variants, byID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return variants, nil
}

func (t productTx) attachImages(
	ctx context.Context,
	productID int64,
	variants []domain.ProductVariant,
	byID map[int64]int,
) error {
	const op = "productTx.attachImages"

	query := `
		SELECT i.id, i.variant_id, i.url, i.is_thumbnail, i.is_active
		FROM variant_images i
		JOIN product_variants v ON v.id = i.variant_id
		WHERE v.product_id = $1 ORDER BY i.id;`

	rows, err := t.tx.QueryContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.VariantImage
		err := rows.Scan(
			&img.ID, &img.VariantID, &img.URL, &img.IsThumbnail, &img.IsActive,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if i, ok := byID[img.VariantID]; ok {
			variants[i].Images = append(variants[i].Images, img)
		}
	}
	return rows.Err()
}

func (t productTx) InsertVariant(
	ctx context.Context, productID int64, f domain.VariantFields,
) (int64, error) {
	const op = "productTx.InsertVariant"

	query := `
		INSERT INTO product_variants (
			product_id, max_price, discount_price,
			total_in_stock, is_in_stock, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		productID, f.MaxPrice, nullDecimal(f.DiscountPrice),
		f.TotalInStock, f.IsInStock, f.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return id, nil
}

func (t productTx) UpdateVariantFields(
	ctx context.Context, variantID int64, patch domain.VariantPatch,
) error {
	const op = "productTx.UpdateVariantFields"

	var b patchBuilder
	b.add("max_price", patch.MaxPrice)
	b.add("discount_price", patch.DiscountPrice)
	b.add("total_in_stock", patch.TotalInStock)
	b.add("is_in_stock", patch.IsInStock)
	b.add("is_active", patch.IsActive)

	query, args := b.update("product_variants", variantID)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return nil
}

func (t productTx) InsertVariantImage(
	ctx context.Context, variantID int64, f domain.ImageFields,
) (int64, error) {
	const op = "productTx.InsertVariantImage"

	query := `
		INSERT INTO variant_images (variant_id, url, is_thumbnail, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id;`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		variantID, f.URL, f.IsThumbnail, f.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return id, nil
}

func (t productTx) UpdateVariantImageFields(
	ctx context.Context, imageID int64, patch domain.ImagePatch,
) error {
	const op = "productTx.UpdateVariantImageFields"

	var b patchBuilder
	b.add("url", patch.URL)
	b.add("is_thumbnail", patch.IsThumbnail)
	b.add("is_active", patch.IsActive)

	query, args := b.update("variant_images", imageID)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// A patchBuilder assembles an UPDATE statement from the non-nil fields
// of a patch. add accepts any typed pointer; nil pointers are skipped.
type patchBuilder struct {
	set  []string
	args []any
}

func (b *patchBuilder) add(column string, v any) {
	switch p := v.(type) {
	case *int64:
		if p == nil {
			return
		}
		b.args = append(b.args, *p)
	case *int:
		if p == nil {
			return
		}
		b.args = append(b.args, *p)
	case *string:
		if p == nil {
			return
		}
		b.args = append(b.args, *p)
	case *bool:
		if p == nil {
			return
		}
		b.args = append(b.args, *p)
	case *decimal.Decimal:
		if p == nil {
			return
		}
		b.args = append(b.args, *p)
	case *domain.BillingStatus:
		if p == nil {
			return
		}
		b.args = append(b.args, string(*p))
	case *domain.ShippingStatus:
		if p == nil {
			return
		}
		b.args = append(b.args, string(*p))
	default:
		panic(fmt.Sprintf("patchBuilder: unsupported type %T", v))
	}
	b.set = append(b.set, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *patchBuilder) update(table string, id int64) (string, []any) {
	b.args = append(b.args, id)
	where := fmt.Sprintf("WHERE id = $%d", len(b.args))
	if len(b.set) == 0 {
		return fmt.Sprintf(
			"UPDATE %s SET updated_at = now() %s;", table, where,
		), b.args
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = now() %s;",
		table, strings.Join(b.set, ", "), where,
	), b.args
}
