package service_test

import (
	"context"
	"testing"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
	"github.com/soukhub/marketplace/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderStore struct {
	seq    int64
	orders map[int64]*domain.Order
}

func newOrderStore() *orderStore {
	return &orderStore{orders: make(map[int64]*domain.Order)}
}

func (st *orderStore) InTx(
	ctx context.Context, fn func(tx port.OrderTx) error,
) error {
	return fn(&fakeOrderTx{st})
}

func (st *orderStore) nextID() int64 {
	st.seq++
	return st.seq
}

func (st *orderStore) seed(o domain.Order) *domain.Order {
	if o.ID > st.seq {
		st.seq = o.ID
	}
	for _, it := range o.Items {
		if it.ID > st.seq {
			st.seq = it.ID
		}
	}
	stored := o
	st.orders[o.ID] = &stored
	return &stored
}

type fakeOrderTx struct {
	st *orderStore
}

func (tx *fakeOrderTx) InsertOrder(
	_ context.Context, fields domain.OrderFields,
) (int64, error) {
	id := tx.st.nextID()
	tx.st.orders[id] = &domain.Order{
		ID:                id,
		CustomerID:        fields.CustomerID,
		ShippingAddressID: fields.ShippingAddressID,
		PaymentID:         fields.PaymentID,
		CouponID:          fields.CouponID,
		TotalPaid:         fields.TotalPaid,
		BillingStatus:     fields.BillingStatus,
		ShippingStatus:    fields.ShippingStatus,
	}
	return id, nil
}

func (tx *fakeOrderTx) GetOrderForUpdate(
	ctx context.Context, orderID int64,
) (domain.Order, error) {
	return tx.GetOrder(ctx, orderID)
}

func (tx *fakeOrderTx) GetOrder(
	_ context.Context, orderID int64,
) (domain.Order, error) {
	o, ok := tx.st.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return *o, nil
}

func (tx *fakeOrderTx) UpdateOrderFields(
	_ context.Context, orderID int64, patch domain.OrderPatch,
) error {
	o, ok := tx.st.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.ShippingAddressID != nil {
		o.ShippingAddressID = *patch.ShippingAddressID
	}
	if patch.PaymentID != nil {
		o.PaymentID = *patch.PaymentID
	}
	if patch.CouponID != nil {
		o.CouponID = patch.CouponID
	}
	if patch.TotalPaid != nil {
		o.TotalPaid = *patch.TotalPaid
	}
	if patch.BillingStatus != nil {
		o.BillingStatus = *patch.BillingStatus
	}
	if patch.ShippingStatus != nil {
		o.ShippingStatus = *patch.ShippingStatus
	}
	return nil
}

func (tx *fakeOrderTx) ListItems(
	_ context.Context, orderID int64,
) ([]domain.OrderItem, error) {
	o, ok := tx.st.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.OrderItem(nil), o.Items...), nil
}

func (tx *fakeOrderTx) InsertItem(
	_ context.Context, orderID int64, fields domain.OrderItemFields,
) (int64, error) {
	o, ok := tx.st.orders[orderID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	id := tx.st.nextID()
	o.Items = append(o.Items, domain.OrderItem{
		ID:               id,
		OrderID:          orderID,
		ProductVariantID: fields.ProductVariantID,
		PurchasePrice:    fields.PurchasePrice,
		DiscountAmount:   fields.DiscountAmount,
		Quantity:         fields.Quantity,
	})
	return id, nil
}

func (tx *fakeOrderTx) UpdateItemFields(
	_ context.Context, itemID int64, patch domain.OrderItemPatch,
) error {
	for _, o := range tx.st.orders {
		for i := range o.Items {
			it := &o.Items[i]
			if it.ID != itemID {
				continue
			}
			if patch.ProductVariantID != nil {
				it.ProductVariantID = *patch.ProductVariantID
			}
			if patch.PurchasePrice != nil {
				it.PurchasePrice = *patch.PurchasePrice
			}
			if patch.DiscountAmount != nil {
				it.DiscountAmount = *patch.DiscountAmount
			}
			if patch.Quantity != nil {
				it.Quantity = *patch.Quantity
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func orderFields() domain.OrderFields {
	return domain.OrderFields{
		CustomerID:        8,
		ShippingAddressID: 4,
		PaymentID:         6,
		TotalPaid:         dec("1234.50"),
	}
}

func TestOrderServiceCreate(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		st := newOrderStore()
		events := new(fakeEvents)
		s := service.NewOrderService(st, events)

		items := []domain.OrderItemSpec{
			{
				ProductVariantID: int64Ptr(21),
				PurchasePrice:    decPtr("400.00"),
				DiscountAmount:   intPtr(10),
				Quantity:         intPtr(2),
			},
			{
				ProductVariantID: int64Ptr(22),
				PurchasePrice:    decPtr("99.90"),
				Quantity:         intPtr(1),
			},
		}

		order, err := s.CreateOrder(t.Context(), orderFields(), items)
		require.NoError(t, err)

		assert.Equal(t, domain.BillingUnpaid, order.BillingStatus)
		assert.Equal(t, domain.ShippingPending, order.ShippingStatus)

		require.Len(t, order.Items, 2)
		first := order.Items[0]
		assert.EqualValues(t, 21, first.ProductVariantID)
		assert.True(t, first.PurchasePrice.Equal(dec("400.00")))
		assert.Equal(t, 10, first.DiscountAmount)
		assert.Equal(t, 2, first.Quantity)
		assert.Zero(t, order.Items[1].DiscountAmount)

		require.Len(t, events.orders, 1)
		assert.Equal(t, order.ID, events.orders[0].ID)
	})

	t.Run("MissingCustomerID", func(t *testing.T) {
		st := newOrderStore()
		s := service.NewOrderService(st, nil)

		fields := orderFields()
		fields.CustomerID = 0

		_, err := s.CreateOrder(t.Context(), fields, nil)
		require.Error(t, err)

		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "customer_id", fe.Field)
		assert.Empty(t, st.orders)
	})

	t.Run("ItemMissingQuantity", func(t *testing.T) {
		st := newOrderStore()
		s := service.NewOrderService(st, nil)

		items := []domain.OrderItemSpec{
			{
				ProductVariantID: int64Ptr(21),
				PurchasePrice:    decPtr("400.00"),
			},
		}
		_, err := s.CreateOrder(t.Context(), orderFields(), items)
		require.Error(t, err)

		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "order_items.quantity", fe.Field)
	})

	t.Run("InvalidBillingStatus", func(t *testing.T) {
		st := newOrderStore()
		s := service.NewOrderService(st, nil)

		fields := orderFields()
		fields.BillingStatus = "Settled"

		_, err := s.CreateOrder(t.Context(), fields, nil)
		require.Error(t, err)

		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "billing_status", fe.Field)
	})
}

func seededOrder(st *orderStore) *domain.Order {
	return st.seed(domain.Order{
		ID:                1,
		CustomerID:        8,
		ShippingAddressID: 4,
		PaymentID:         6,
		TotalPaid:         dec("1234.50"),
		BillingStatus:     domain.BillingUnpaid,
		ShippingStatus:    domain.ShippingPending,
		Items: []domain.OrderItem{
			{
				ID:               101,
				OrderID:          1,
				ProductVariantID: 21,
				PurchasePrice:    dec("400.00"),
				Quantity:         2,
			},
		},
	})
}

func TestOrderServiceUpdate(t *testing.T) {
	t.Run("PatchStatusesAndItem", func(t *testing.T) {
		st := newOrderStore()
		seededOrder(st)
		s := service.NewOrderService(st, nil)

		billing := domain.BillingPaid
		shipping := domain.ShippingDelivered
		patch := domain.OrderPatch{
			BillingStatus:  &billing,
			ShippingStatus: &shipping,
		}
		items := []domain.OrderItemSpec{
			{ItemID: int64Ptr(101), Quantity: intPtr(3)},
		}

		order, err := s.UpdateOrder(t.Context(), 1, patch, items)
		require.NoError(t, err)

		assert.Equal(t, domain.BillingPaid, order.BillingStatus)
		assert.Equal(t, domain.ShippingDelivered, order.ShippingStatus)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 3, order.Items[0].Quantity)
		assert.True(t, order.Items[0].PurchasePrice.Equal(dec("400.00")))
	})

	t.Run("AddItemToExistingOrder", func(t *testing.T) {
		st := newOrderStore()
		seededOrder(st)
		s := service.NewOrderService(st, nil)

		items := []domain.OrderItemSpec{
			{
				ProductVariantID: int64Ptr(22),
				PurchasePrice:    decPtr("99.90"),
				Quantity:         intPtr(1),
			},
		}
		order, err := s.UpdateOrder(t.Context(), 1, domain.OrderPatch{}, items)
		require.NoError(t, err)
		assert.Len(t, order.Items, 2)
	})

	t.Run("ForeignItemID", func(t *testing.T) {
		st := newOrderStore()
		seededOrder(st)
		s := service.NewOrderService(st, nil)

		items := []domain.OrderItemSpec{
			{ItemID: int64Ptr(999), Quantity: intPtr(1)},
		}
		_, err := s.UpdateOrder(t.Context(), 1, domain.OrderPatch{}, items)
		require.Error(t, err)

		var oe *domain.OwnershipError
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, "item", oe.Kind)
		assert.EqualValues(t, 999, oe.ID)
	})

	t.Run("InvalidShippingStatus", func(t *testing.T) {
		st := newOrderStore()
		seededOrder(st)
		s := service.NewOrderService(st, nil)

		bad := domain.ShippingStatus("Lost")
		patch := domain.OrderPatch{ShippingStatus: &bad}

		_, err := s.UpdateOrder(t.Context(), 1, patch, nil)
		require.Error(t, err)

		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "shipping_status", fe.Field)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		st := newOrderStore()
		s := service.NewOrderService(st, nil)

		_, err := s.UpdateOrder(t.Context(), 42, domain.OrderPatch{}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
