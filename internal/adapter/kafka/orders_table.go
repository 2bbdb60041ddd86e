package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/soukhub/marketplace/pkg/schema"
)

// An orderSavedCodec serdes [schema.OrderSavedV1] for goka.
type orderSavedCodec struct {
	serde Serde
}

func newOrderSavedCodec(s Serde) orderSavedCodec {
	return orderSavedCodec{s}
}

func (c orderSavedCodec) Encode(v any) ([]byte, error) {
	const op = "orderSavedCodec.Encode"
	if _, ok := v.(schema.OrderSavedV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderSavedCodec) Decode(data []byte) (any, error) {
	const op = "orderSavedCodec.Decode"
	var s schema.OrderSavedV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An OrdersTableProcessor materializes the order-saved stream into a
// compacted group table keyed by order id: the last committed state of
// every order, readable through [OrdersView].
type OrdersTableProcessor struct {
	gp *goka.Processor
}

func NewOrdersTableProcessor(
	seedBrokers []string, stream, group string, orderSerde Serde,
) (*OrdersTableProcessor, error) {
	const op = "NewOrdersTableProcessor"

	codec := newOrderSavedCodec(orderSerde)
	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), codec, processOrderSaved),
		goka.Persist(codec),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	return &OrdersTableProcessor{gp}, nil
}

func processOrderSaved(ctx goka.Context, msg any) {
	ctx.SetValue(msg)
}

// Run runs the processor and releases wg when it is ready to consume.
func (p *OrdersTableProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "OrdersTableProcessor.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go func() {
		defer stopFn()
		if err := p.gp.Run(ctx); err != nil {
			log.Error("stopped", "err", err)
			return
		}
		log.Info("stopped")
	}()

	log.Info("preparing...")
	if err := p.gp.WaitForReadyContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
	log.Info("running")
}

func (p *OrdersTableProcessor) Close() {
	const op = "OrdersTableProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An OrdersView reads the orders group table maintained by
// [OrdersTableProcessor]. Reads are eventually consistent with the
// write path.
type OrdersView struct {
	gv *goka.View
}

func NewOrdersView(
	seedBrokers []string, group string, orderSerde Serde,
) (*OrdersView, error) {
	const op = "NewOrdersView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		newOrderSavedCodec(orderSerde),
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &OrdersView{gv}, nil
}

func (v *OrdersView) Run(ctx context.Context) {
	const op = "OrdersView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *OrdersView) GetOrder(orderID int64) (schema.OrderSavedV1, bool, error) {
	const op = "OrdersView.GetOrder"

	val, err := v.gv.Get(fmt.Sprintf("%d", orderID))
	if err != nil {
		return schema.OrderSavedV1{}, false, opErr(err, op)
	}
	if val == nil {
		return schema.OrderSavedV1{}, false, nil
	}

	s, ok := val.(schema.OrderSavedV1)
	if !ok {
		return schema.OrderSavedV1{}, false, opErr(ErrInvalidValueType, op)
	}
	return s, true, nil
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}
