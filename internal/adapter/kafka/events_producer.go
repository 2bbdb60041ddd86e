package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CatalogEventsProducer = (*CatalogEventsProducer)(nil)

// A CatalogEventsProducer publishes committed product and order
// aggregates. Product records are keyed by slug, order records by
// order id so the orders group table compacts per order.
type CatalogEventsProducer struct {
	cl           ProducerClient
	productTopic string
	orderTopic   string
	productEnc   Encoder
	orderEnc     Encoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl           ProducerClient
	productTopic string
	orderTopic   string
	productEnc   Encoder
	orderEnc     Encoder
}

func ProducerClientOpt(ctx context.Context, seedBrokers []string) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerTopicsOpt(productTopic, orderTopic string) ProducerOpt {
	return func(opts *producerOpts) error {
		if productTopic == "" || orderTopic == "" {
			return opErr(ErrTooFewOpts, "ProducerTopicsOpt")
		}
		opts.productTopic = productTopic
		opts.orderTopic = orderTopic
		return nil
	}
}

func ProducerEncodersOpt(productEnc, orderEnc Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if productEnc == nil || orderEnc == nil {
			return opErr(ErrTooFewOpts, "ProducerEncodersOpt")
		}
		opts.productEnc = productEnc
		opts.orderEnc = orderEnc
		return nil
	}
}

func NewCatalogEventsProducer(
	opts ...ProducerOpt,
) (CatalogEventsProducer, error) {
	const op = "NewCatalogEventsProducer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogEventsProducer{}, opErr(err, op)
		}
	}

	return CatalogEventsProducer{
		cl:           options.cl,
		productTopic: options.productTopic,
		orderTopic:   options.orderTopic,
		productEnc:   options.productEnc,
		orderEnc:     options.orderEnc,
	}, nil
}

func (p CatalogEventsProducer) Close() {
	const op = "CatalogEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CatalogEventsProducer) ProduceProductSaved(
	ctx context.Context, product domain.Product,
) error {
	const op = "CatalogEventsProducer.ProduceProductSaved"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	s := productSavedToSchemaV1(product)
	v, err := p.productEnc.Encode(s)
	if err != nil {
		return opErr(err, op)
	}

	r := &kgo.Record{Topic: p.productTopic, Key: []byte(s.Slug), Value: v}
	return p.produce(ctx, op, r)
}

func (p CatalogEventsProducer) ProduceOrderSaved(
	ctx context.Context, order domain.Order,
) error {
	const op = "CatalogEventsProducer.ProduceOrderSaved"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	s := orderSavedToSchemaV1(order)
	v, err := p.orderEnc.Encode(s)
	if err != nil {
		return opErr(err, op)
	}

	key := strconv.FormatInt(s.OrderID, 10)
	r := &kgo.Record{Topic: p.orderTopic, Key: []byte(key), Value: v}
	return p.produce(ctx, op, r)
}

func (p CatalogEventsProducer) produce(
	ctx context.Context, op string, rs ...*kgo.Record,
) error {
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op, "produce")
	}
	return nil
}
