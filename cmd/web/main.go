package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/userdir/internal/buildinfo"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/directory"
	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/client/web"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout, "userdir-web", logging.ParseLevel(cfg.LogLevel))

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.SlogLogger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := directory.NewMetrics(reg)

	fetcher, err := directory.NewHTTPClient(cfg.DirectoryURL,
		directory.WithTimeout(cfg.RequestTimeout),
		directory.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	store := session.NewStore(logger)
	navigator := nav.NewNavigator()
	ctrl := directoryview.New(store, fetcher, logger,
		directoryview.WithRedirector(navigator),
		directoryview.WithMetrics(metrics),
	)
	defer ctrl.Close()

	router, err := web.NewRouter(ctx, web.Deps{
		Store:      store,
		Auth:       services.NewAuthService(store, logger),
		Directory:  ctrl,
		Navigator:  navigator,
		Logger:     logger,
		Registerer: reg,
		Gatherer:   reg,
		RenderWait: cfg.RenderWait,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "web server listening", "addr", cfg.ListenAddr, "directory", fetcher.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
