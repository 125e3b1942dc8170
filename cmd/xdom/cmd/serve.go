package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/xdom/pkg/scheduler"
	"github.com/go-drift/xdom/pkg/xdom"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo live over HTTP",
		Long: `Run the demo application on a real frame loop and serve it over HTTP.

Endpoints:
  GET  /            current HTML of the surface
  POST /click/{id}  click the element with that id
  GET  /metrics     Prometheus metrics of the scheduler`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides serve.addr)")
	RegisterCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := resolved.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := scheduler.NewLoopClock(resolved.Scheduler.FrameInterval)
	rt, err := xdom.New(clock, resolved.Scheduler)
	if err != nil {
		return err
	}
	app := newDemo(rt, resolved.AppName)
	rt.Start()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		scheduler.NewCollector(rt.Scheduler()),
		collectors.NewGoCollector(),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeMux(clock, app, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := clock.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		logger.WithField("addr", addr).Info("serving")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("stopped")
	return err
}

func newServeMux(clock *scheduler.LoopClock, app *demo, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		var (
			out       string
			renderErr error
		)
		if err := clock.Dispatch(r.Context(), func() { out, renderErr = app.rt.Render() }); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if renderErr != nil {
			http.Error(w, renderErr.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html>\n<html><body>%s</body></html>\n", out)
	})

	mux.HandleFunc("POST /click/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var clickErr error
		if err := clock.Dispatch(r.Context(), func() { clickErr = app.click(id) }); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if clickErr != nil {
			logger.WithFields(logrus.Fields{"id": id}).WithError(clickErr).Warn("click rejected")
			http.Error(w, clickErr.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}
