package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
)

var _ port.OrderRepository = (*OrdersRepository)(nil)

type OrdersRepository struct {
	db sqldbTx
}

func NewOrdersRepository(db sqldbTx) OrdersRepository {
	return OrdersRepository{db}
}

func (r OrdersRepository) InTx(
	ctx context.Context, fn func(tx port.OrderTx) error,
) error {
	const op = "OrdersRepository.InTx"
	return inTx(ctx, r.db, op, func(tx *sql.Tx) error {
		return fn(orderTx{tx})
	})
}

type orderTx struct {
	tx *sql.Tx
}

func (t orderTx) InsertOrder(
	ctx context.Context, f domain.OrderFields,
) (int64, error) {
	const op = "orderTx.InsertOrder"

	query := `
		INSERT INTO orders (
			customer_id, shipping_address_id, payment_id, coupon_id,
			total_paid, billing_status, shipping_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		f.CustomerID, f.ShippingAddressID, f.PaymentID, nullInt64(f.CouponID),
		f.TotalPaid, string(f.BillingStatus), string(f.ShippingStatus),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return id, nil
}

const orderColumns = `
	id, customer_id, shipping_address_id, payment_id, coupon_id,
	total_paid, billing_status, shipping_status, created_at, updated_at`

func (t orderTx) GetOrderForUpdate(
	ctx context.Context, orderID int64,
) (domain.Order, error) {
	const op = "orderTx.GetOrderForUpdate"
	query := `SELECT` + orderColumns + `
		FROM orders WHERE id = $1 FOR UPDATE;`
	return t.scanOrder(ctx, op, query, orderID)
}

func (t orderTx) GetOrder(
	ctx context.Context, orderID int64,
) (domain.Order, error) {
	const op = "orderTx.GetOrder"
	query := `SELECT` + orderColumns + `
		FROM orders WHERE id = $1;`

	o, err := t.scanOrder(ctx, op, query, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	o.Items, err = t.ListItems(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (t orderTx) scanOrder(
	ctx context.Context, op, query string, orderID int64,
) (domain.Order, error) {
	var (
		o      domain.Order
		coupon sql.NullInt64
	)
	err := t.tx.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.CustomerID, &o.ShippingAddressID, &o.PaymentID, &coupon,
		&o.TotalPaid, &o.BillingStatus, &o.ShippingStatus,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	if coupon.Valid {
		o.CouponID = &coupon.Int64
	}
	return o, nil
}

func (t orderTx) UpdateOrderFields(
	ctx context.Context, orderID int64, patch domain.OrderPatch,
) error {
	const op = "orderTx.UpdateOrderFields"

	var b patchBuilder
	b.add("shipping_address_id", patch.ShippingAddressID)
	b.add("payment_id", patch.PaymentID)
	b.add("coupon_id", patch.CouponID)
	b.add("total_paid", patch.TotalPaid)
	b.add("billing_status", patch.BillingStatus)
	b.add("shipping_status", patch.ShippingStatus)

	query, args := b.update("orders", orderID)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return nil
}

func (t orderTx) ListItems(
	ctx context.Context, orderID int64,
) ([]domain.OrderItem, error) {
	const op = "orderTx.ListItems"

	query := `
		SELECT id, order_id, product_variant_id,
			purchase_price, discount_amount, quantity
		FROM order_items
		WHERE order_id = $1 ORDER BY id;`

	rows, err := t.tx.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductVariantID,
			&it.PurchasePrice, &it.DiscountAmount, &it.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return items, nil
}

func (t orderTx) InsertItem(
	ctx context.Context, orderID int64, f domain.OrderItemFields,
) (int64, error) {
	const op = "orderTx.InsertItem"

	query := `
		INSERT INTO order_items (
			order_id, product_variant_id, purchase_price,
			discount_amount, quantity
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		orderID, f.ProductVariantID, f.PurchasePrice,
		f.DiscountAmount, f.Quantity,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return id, nil
}

func (t orderTx) UpdateItemFields(
	ctx context.Context, itemID int64, patch domain.OrderItemPatch,
) error {
	const op = "orderTx.UpdateItemFields"

	var b patchBuilder
	b.add("product_variant_id", patch.ProductVariantID)
	b.add("purchase_price", patch.PurchasePrice)
	b.add("discount_amount", patch.DiscountAmount)
	b.add("quantity", patch.Quantity)

	query, args := b.update("order_items", itemID)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, classifyErr(err))
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
