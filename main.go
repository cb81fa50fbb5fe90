package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-smartshop/internal/app"
	"go-smartshop/internal/config"
	auditHandler "go-smartshop/internal/handler/audit"
	"go-smartshop/internal/loader"
	"go-smartshop/internal/viewstate"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const flushTimeout = time.Second * 30

func main() {

	cnf := config.LoadConfigOrPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	reconcile := make(chan os.Signal, 1)
	signal.Notify(reconcile, syscall.SIGHUP)

	a := app.NewOrPanic(ctx, cnf)
	log.Info().Msgf("signed in as %s", a.Session.UserId)

	audit := auditHandler.New(a.Publisher)
	list := viewstate.NewList(a.Products)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.Publisher.Start(gctx)
	})
	group.Go(func() error {
		return audit.EventHandler(gctx)
	})
	group.Go(func() error {
		return list.Run(gctx)
	})
	group.Go(func() error {
		return reportInventory(gctx, list)
	})
	group.Go(func() error {
		return reconcileOnSignal(gctx, a, reconcile)
	})
	if cnf.Metrics.Addr != "" {
		group.Go(func() error {
			return serveMetrics(gctx, cnf.Metrics.Addr, a.Registry)
		})
	}
	if len(os.Args) > 1 {
		group.Go(func() error {
			select {
			case <-audit.Subscribed():
			case <-gctx.Done():
				return gctx.Err()
			}
			return seed(gctx, a, os.Args[1])
		})
	}

	select {
	case <-sigs:
		// Received a termination signal, continue to shutdown
	case <-gctx.Done():
		// errgroup encountered an error, continue to shutdown
	}

	cancel() // cancel the root context to signal all the consumers

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutting down after failure")
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), flushTimeout)
	defer flushCancel()

	a.Products.Wait()
	if err := a.Products.SyncUnsynced(flushCtx); err != nil {
		log.Error().Err(err).Msg("final sync did not complete")
	}
	if left := len(a.Store.GetUnsynced()); left > 0 {
		log.Warn().Msgf("%d products were not mirrored before exit", left)
	}

	if err := a.Close(); err != nil {
		log.Error().Err(err).Msg("failed to release resources")
	}
}

// seed imports a products file and mirrors whatever the first pushes missed.
func seed(ctx context.Context, a *app.App, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	defer f.Close()

	items, err := loader.Decode(f)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	result, err := loader.Load(ctx, items, a.Products)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	log.Info().Msgf("seeded %d products from %s, %d rejected", result.Added, path, len(result.Rejected))

	a.Products.Wait()
	return a.Products.SyncUnsynced(ctx)
}

// reconcileOnSignal retries every unsynced product each time SIGHUP arrives.
func reconcileOnSignal(ctx context.Context, a *app.App, reconcile <-chan os.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-reconcile:
			pending := len(a.Store.GetUnsynced())
			if err := a.Products.SyncUnsynced(ctx); err != nil {
				return err
			}
			log.Info().Msgf("reconciled: %d pending, %d still unsynced", pending, len(a.Store.GetUnsynced()))
		}
	}
}

func reportInventory(ctx context.Context, list *viewstate.List) error {
	for s := range list.Watch(ctx) {
		if s.Error != "" {
			log.Warn().Msgf("inventory: %s", s.Error)
		}
		log.Debug().Msgf("inventory: %d products worth %s", s.Count, s.TotalValue.StringFixed(2))
	}
	return ctx.Err()
}

func serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
