// Package app wires configuration, storage and the HTTP surface together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nikolayk812/cvshop/internal/cart"
	"github.com/nikolayk812/cvshop/internal/catalog"
	"github.com/nikolayk812/cvshop/internal/checkout"
	"github.com/nikolayk812/cvshop/internal/config"
	"github.com/nikolayk812/cvshop/internal/contact"
	delivery "github.com/nikolayk812/cvshop/internal/delivery/http"
	"github.com/nikolayk812/cvshop/internal/repository"
	"github.com/nikolayk812/cvshop/internal/telemetry"
	"github.com/nikolayk812/cvshop/pkg/closer"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Carts    *cart.Service
	Checkout *checkout.Formatter
	Contact  *contact.Service

	logger *zap.Logger
	closer *closer.Closer
	server *delivery.Server
}

// New builds every dependency. On error the resources opened so far are released.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	a := &App{
		Config: cfg,
		logger: logger,
		closer: closer.New(cfg.Server.ShutdownTimeout),
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, a.closer.Close(context.Background()))
		}
	}()

	a.Catalog, err = LoadCatalog(cfg.Shop.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: %w", err)
	}
	logger.Info("catalog loaded", zap.Int("items", a.Catalog.Len()))

	a.Checkout, err = newFormatter(cfg.Shop)
	if err != nil {
		return nil, fmt.Errorf("newFormatter: %w", err)
	}

	providers, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("telemetry.Init: %w", err)
	}
	a.closer.Add("telemetry", providers.Shutdown)

	var metrics *cart.Metrics
	if providers.Registry != nil {
		metrics = cart.NewMetrics(providers.Registry)
	}

	kv, err := newKeyValueStore(ctx, cfg.Storage, a.closer, logger)
	if err != nil {
		return nil, fmt.Errorf("newKeyValueStore: %w", err)
	}

	repo := repository.NewCart(kv, cfg.Storage.KeyPrefix)
	a.Carts = cart.NewService(repo, a.Catalog, logger.Named("cart"), metrics)
	a.Contact = contact.NewService(cfg.Shop.ContactEmail, logger.Named("contact"))

	handler := delivery.NewHandler(a.Catalog, a.Carts, a.Checkout, a.Contact, logger.Named("http"))
	router := delivery.NewRouter(handler, delivery.RouterOptions{
		SecureCookies:  cfg.Server.SecureCookies,
		MetricsPath:    cfg.Telemetry.MetricsPath,
		MetricsHandler: providers.MetricsHandler,
		ServiceName:    cfg.Telemetry.ServiceName,
	}, logger.Named("http"))

	a.server = delivery.NewServer(router, cfg.Server)

	return a, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	a.closer.Add("http", a.server.Stop)

	go func() {
		a.logger.Info("http server started", zap.String("addr", a.server.Addr()))
		errCh <- a.server.Run()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case runErr = <-errCh:
		if runErr != nil {
			runErr = fmt.Errorf("server.Run: %w", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	return errors.Join(runErr, a.Close(shutdownCtx))
}

func (a *App) Close(ctx context.Context) error {
	return a.closer.Close(ctx)
}

// LoadCatalog reads the catalog at path, or the built-in one when path is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return catalog.Load(data)
}

func newFormatter(cfg config.ShopConfig) (*checkout.Formatter, error) {
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("currency[%s] is not valid: %w", cfg.Currency, err)
	}

	return checkout.NewFormatter(checkout.Config{
		ShopName:       cfg.Name,
		WhatsAppNumber: cfg.WhatsAppNumber,
		MPAlias:        cfg.MPAlias,
		CuentaDNIAlias: cfg.CuentaDNIAlias,
		Currency:       unit,
	})
}
