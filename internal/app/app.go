package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/sr"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/postgresql"
	"github.com/niksmo/storefront/internal/adapter/restapi"
	"github.com/niksmo/storefront/internal/adapter/valkey"
	"github.com/niksmo/storefront/internal/core/effect"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
)

type serdes struct {
	intentRecord schema.Serde
	product      schema.Serde
}

type tlsConfigs struct {
	broker *tls.Config
	valkey *tls.Config
}

type App struct {
	ctx       context.Context
	cfg       config.Config
	sessionID string

	tls     tlsConfigs
	serdes  serdes
	valkey  *redis.Client
	tokens  port.TokenStorage
	api     *restapi.Client
	journal *kafka.IntentsProducer
	storage *postgresql.JournalStorage
	catalog *kafka.CatalogConsumer

	nav        *httphandler.NavigationRecorder
	service    *service.Service
	httpServer httphandler.HTTPServer
}

// New wires the storefront session. Any failure while connecting to the
// infrastructure panics.
func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg, sessionID: cfg.SessionID}
	if app.sessionID == "" {
		app.sessionID = uuid.NewString()
	}

	app.initLogger()
	app.initTLS()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger.With("session_id", app.sessionID))
}

func (app *App) initTLS() {
	const op = "App.initTLS"

	if files := app.cfg.Broker.TLS; files.Enabled() {
		c, err := adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
		if err != nil {
			app.fallDown(op, err)
		}
		app.tls.broker = c
	}
	if files := app.cfg.Valkey.TLS; files.Enabled() {
		c, err := adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
		if err != nil {
			app.fallDown(op, err)
		}
		app.tls.valkey = c
	}
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	if !app.cfg.JournalEnabled() && !app.cfg.CatalogFeedEnabled() {
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}
	identifier := schema.NewRegistryIdentifier(srClient)
	topics := app.cfg.Broker.Topics

	if app.cfg.JournalEnabled() {
		s, err := schema.NewSerdeIntentRecordV1(
			app.ctx,
			schema.SubjectOpt(topics.Intents+"-value"),
			schema.SchemaIdentifierOpt(identifier),
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.serdes.intentRecord = s
	}

	if app.cfg.CatalogFeedEnabled() {
		s, err := schema.NewSerdeProductV1(
			app.ctx,
			schema.SubjectOpt(topics.CatalogUpdates+"-value"),
			schema.SchemaIdentifierOpt(identifier),
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.serdes.product = s
	}
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	cfg := app.cfg

	var tokens port.TokenSource
	if cfg.Valkey.Addr != "" {
		cl, err := valkey.Connect(
			ctx, cfg.Valkey.Addr, cfg.Valkey.Password, cfg.Valkey.DB, app.tls.valkey,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		storage := valkey.NewTokenStorage(cl, app.sessionID, cfg.Valkey.TokenTTL)
		app.valkey = cl
		app.tokens = storage
		tokens = storage
	}

	api, err := restapi.NewClient(
		cfg.API.BaseURL,
		tokens,
		restapi.TimeoutOpt(cfg.API.Timeout),
		restapi.RetryOpt(cfg.API.RetryAttempts, cfg.API.RetryDelay),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.api = api

	if cfg.JournalEnabled() {
		cl, err := kafka.NewProducerClient(
			ctx, cfg.Broker.SeedBrokers, cfg.Broker.Topics.Intents, app.tls.broker,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		p, err := kafka.NewIntentsProducer(
			kafka.ProducerClientOpt(cl),
			kafka.ProducerEncoderOpt(app.serdes.intentRecord),
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.journal = &p
	}

	if cfg.DatabaseJournalEnabled() {
		db, err := postgresql.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			app.fallDown(op, err)
		}
		s := postgresql.NewJournalStorage(db)
		app.storage = &s
	}
}

func (app *App) initCoreService() {
	cfg := app.cfg
	app.nav = httphandler.NewNavigationRecorder()

	opts := []service.Opt{
		service.NavigationDepthOpt(cfg.Shopping.NavigationDepth),
		service.SearchOpts(
			effect.ItemsPerPageOpt(cfg.Shopping.ItemsPerPage),
			effect.SuggestDebounceOpt(cfg.Shopping.SuggestDebounce),
		),
	}
	if app.tokens != nil {
		opts = append(opts, service.TokenStorageOpt(app.tokens))
	}
	if app.journal != nil {
		opts = append(opts, service.JournalOpt(*app.journal, app.sessionID))
	}
	if app.storage != nil {
		opts = append(opts, service.JournalOpt(*app.storage, app.sessionID))
	}

	remote := service.Remote{
		Basket:     app.api,
		Orders:     app.api,
		Categories: app.api,
		Products:   app.api,
		Suggest:    app.api,
	}
	app.service = service.New(app.ctx, remote, app.nav, opts...)
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	cfg := app.cfg

	if cfg.CatalogFeedEnabled() {
		cl, err := kafka.NewConsumerClient(
			cfg.Broker.SeedBrokers,
			cfg.Broker.Topics.CatalogUpdates,
			cfg.Broker.Consumers.CatalogGroup,
			app.tls.broker,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		c, err := kafka.NewCatalogConsumer(
			kafka.ConsumerClientOpt(cl),
			kafka.ConsumerDecoderOpt(app.serdes.product),
			kafka.ConsumerCatalogUpdaterOpt(app.service),
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.catalog = &c
	}

	router := httphandler.NewRouter(app.service, app.nav)
	app.httpServer = httphandler.NewHTTPServer(
		cfg.HTTPServerAddr, router, cfg.HandlerTimeout,
	)
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.service.Run()

	if app.catalog != nil {
		go app.catalog.Run(app.ctx)
	}
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.catalog != nil {
		app.catalog.Close()
	}
	app.service.Close()
	if app.journal != nil {
		app.journal.Close()
	}
	if app.storage != nil {
		app.storage.Close()
	}
	if app.valkey != nil {
		if err := app.valkey.Close(); err != nil {
			slog.Error("failed to close valkey client", "op", "App.Close", "err", err)
		}
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
