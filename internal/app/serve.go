package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/server"
)

const shutdownTimeout = 5 * time.Second

// Serve mounts once and serves the grid over HTTP until ctx is cancelled.
// An empty addr uses listen_addr from config.
func Serve(ctx context.Context, opts Options, addr string) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	if addr == "" {
		addr = e.cfg.ListenAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return serve(ctx, ln, e.client, e.log, e.cfg.CORSOrigins)
}

func serve(ctx context.Context, ln net.Listener, fetcher books.Fetcher, logger *zap.Logger, origins []string) error {
	mount := NewMount(fetcher, logger)
	defer mount.Unmount()
	mount.Start(ctx)

	srv := &http.Server{
		Handler: server.New(mount.Store(), server.Options{
			CORSOrigins: origins,
			Logger:      logger.Named("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving books", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})
	return g.Wait()
}
