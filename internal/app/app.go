package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/soukhub/marketplace/config"
	"github.com/soukhub/marketplace/internal/adapter/httphandler"
	"github.com/soukhub/marketplace/internal/adapter/kafka"
	"github.com/soukhub/marketplace/internal/adapter/storage"
	"github.com/soukhub/marketplace/internal/core/port"
	"github.com/soukhub/marketplace/internal/core/service"
	"github.com/soukhub/marketplace/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	productSaved schema.Serde
	orderSaved   schema.Serde
}

type coreService struct {
	productWriter port.ProductWriter
	orderWriter   port.OrderWriter
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	db         storage.SQLDB
	serdes     serdes
	producer   kafka.CatalogEventsProducer
	ordersProc *kafka.OrdersTableProcessor
	ordersView *kafka.OrdersView
	service    coreService
	httpServer httphandler.HTTPServer
	procWG     sync.WaitGroup
}

func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	app.initLogger()
	app.initStorage()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	db, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.db = db
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	productSS := app.cfg.Broker.Topics.ProductSaved + "-value"
	productSerde, err := schema.NewSerdeProductSavedV1(
		ctx,
		schema.SubjectOpt(productSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	orderSS := app.cfg.Broker.Topics.OrderSaved + "-value"
	orderSerde, err := schema.NewSerdeOrderSavedV1(
		ctx,
		schema.SubjectOpt(orderSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.productSaved = productSerde
	app.serdes.orderSaved = orderSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	broker := app.cfg.Broker

	producer, err := kafka.NewCatalogEventsProducer(
		kafka.ProducerClientOpt(ctx, broker.SeedBrokers),
		kafka.ProducerTopicsOpt(
			broker.Topics.ProductSaved, broker.Topics.OrderSaved,
		),
		kafka.ProducerEncodersOpt(
			app.serdes.productSaved, app.serdes.orderSaved,
		),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer

	ordersProc, err := kafka.NewOrdersTableProcessor(
		broker.SeedBrokers,
		broker.Topics.OrderSaved,
		broker.Consumers.OrdersTableGroup,
		app.serdes.orderSaved,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.ordersProc = ordersProc

	ordersView, err := kafka.NewOrdersView(
		broker.SeedBrokers,
		broker.Consumers.OrdersTableGroup,
		app.serdes.orderSaved,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.ordersView = ordersView
}

func (app *App) initCoreService() {
	productsRepo := storage.NewProductsRepository(app.db)
	ordersRepo := storage.NewOrdersRepository(app.db)

	app.service.productWriter = service.NewProductService(
		productsRepo, app.producer,
	)
	app.service.orderWriter = service.NewOrderService(
		ordersRepo, app.producer,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service.productWriter)
	httphandler.RegisterOrders(mux, app.service.orderWriter)
	httphandler.RegisterOrdersView(mux, app.ordersView)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	app.procWG.Add(1)
	go app.ordersProc.Run(app.ctx, stopFn, &app.procWG)
	go app.ordersView.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.procWG.Wait()
	app.ordersProc.Close()
	app.producer.Close()
	app.db.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
