package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
	"github.com/soukhub/marketplace/pkg/retry"
)

var _ port.OrderWriter = (*OrderService)(nil)

// An OrderService writes order aggregates: the order row plus its line
// items in one transaction. Orders carry no slug and no stock-sum rule;
// what remains is item ownership and required creation fields.
type OrderService struct {
	repo   port.OrderRepository
	events port.CatalogEventsProducer
}

func NewOrderService(
	repo port.OrderRepository, events port.CatalogEventsProducer,
) OrderService {
	return OrderService{repo, events}
}

func (s OrderService) CreateOrder(
	ctx context.Context,
	fields domain.OrderFields,
	items []domain.OrderItemSpec,
) (domain.Order, error) {
	const op = "OrderService.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateOrderFields(&fields); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateItemSpecs(items, nil); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := retry.DoWithResult(ctx, conflictRetry(),
		func() (domain.Order, error) {
			return s.createTx(ctx, fields, items)
		})
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notifySaved(ctx, order)
	return order, nil
}

func (s OrderService) createTx(
	ctx context.Context,
	fields domain.OrderFields,
	items []domain.OrderItemSpec,
) (domain.Order, error) {
	var order domain.Order
	err := s.repo.InTx(ctx, func(tx port.OrderTx) error {
		orderID, err := tx.InsertOrder(ctx, fields)
		if err != nil {
			return err
		}
		if err := applyItemSpecs(ctx, tx, orderID, items); err != nil {
			return err
		}
		order, err = tx.GetOrder(ctx, orderID)
		return err
	})
	return order, err
}

func (s OrderService) UpdateOrder(
	ctx context.Context,
	orderID int64,
	patch domain.OrderPatch,
	items []domain.OrderItemSpec,
) (domain.Order, error) {
	const op = "OrderService.UpdateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateOrderPatch(patch); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := retry.DoWithResult(ctx, conflictRetry(),
		func() (domain.Order, error) {
			return s.updateTx(ctx, orderID, patch, items)
		})
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notifySaved(ctx, order)
	return order, nil
}

func (s OrderService) updateTx(
	ctx context.Context,
	orderID int64,
	patch domain.OrderPatch,
	items []domain.OrderItemSpec,
) (domain.Order, error) {
	var order domain.Order
	err := s.repo.InTx(ctx, func(tx port.OrderTx) error {
		if _, err := tx.GetOrderForUpdate(ctx, orderID); err != nil {
			return err
		}
		persisted, err := tx.ListItems(ctx, orderID)
		if err != nil {
			return err
		}

		if err := validateItemSpecs(items, persisted); err != nil {
			return err
		}
		if err := applyItemSpecs(ctx, tx, orderID, items); err != nil {
			return err
		}

		if !patch.Empty() {
			if err := tx.UpdateOrderFields(ctx, orderID, patch); err != nil {
				return err
			}
		}

		order, err = tx.GetOrder(ctx, orderID)
		return err
	})
	return order, err
}

func (s OrderService) notifySaved(ctx context.Context, o domain.Order) {
	const op = "OrderService.notifySaved"
	if s.events == nil {
		return
	}
	if err := s.events.ProduceOrderSaved(ctx, o); err != nil {
		slog.Error("failed to produce order event",
			"op", op, "orderID", o.ID, "err", err)
	}
}

// validateOrderFields also fills the status defaults for a new order.
func validateOrderFields(fields *domain.OrderFields) error {
	switch {
	case fields.CustomerID <= 0:
		return domain.RequiredFieldError("customer_id")
	case fields.ShippingAddressID <= 0:
		return domain.RequiredFieldError("shipping_address_id")
	case fields.PaymentID <= 0:
		return domain.RequiredFieldError("payment_id")
	case fields.TotalPaid.IsNegative():
		return &domain.FieldError{
			Field: "total_paid", Message: "must not be negative",
		}
	}

	if fields.BillingStatus == "" {
		fields.BillingStatus = domain.BillingUnpaid
	}
	if fields.ShippingStatus == "" {
		fields.ShippingStatus = domain.ShippingPending
	}
	if err := validBillingStatus(fields.BillingStatus); err != nil {
		return err
	}
	return validShippingStatus(fields.ShippingStatus)
}

func validateOrderPatch(patch domain.OrderPatch) error {
	if patch.TotalPaid != nil && patch.TotalPaid.IsNegative() {
		return &domain.FieldError{
			Field: "total_paid", Message: "must not be negative",
		}
	}
	if patch.BillingStatus != nil {
		if err := validBillingStatus(*patch.BillingStatus); err != nil {
			return err
		}
	}
	if patch.ShippingStatus != nil {
		return validShippingStatus(*patch.ShippingStatus)
	}
	return nil
}

func validBillingStatus(s domain.BillingStatus) error {
	if s != domain.BillingPaid && s != domain.BillingUnpaid {
		return &domain.FieldError{
			Field: "billing_status", Message: "not a valid choice",
		}
	}
	return nil
}

func validShippingStatus(s domain.ShippingStatus) error {
	if s != domain.ShippingPending && s != domain.ShippingDelivered {
		return &domain.FieldError{
			Field: "shipping_status", Message: "not a valid choice",
		}
	}
	return nil
}
