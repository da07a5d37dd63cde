package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/invest-tips/internal/app"
	"github.com/pribylovaa/invest-tips/internal/config"
	tipshttp "github.com/pribylovaa/invest-tips/internal/http"
	"github.com/pribylovaa/invest-tips/internal/metrics"
	logctx "github.com/pribylovaa/invest-tips/internal/pkg/log"
	"github.com/pribylovaa/invest-tips/internal/service"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := logctx.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)
	log.Info("starting tips-service", "env", cfg.Env, "driver", cfg.DB.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	initCtx, initCancel := context.WithTimeout(logctx.Into(rootCtx, log), 30*time.Second)
	store, err := app.OpenStorage(initCtx, cfg.DB)
	if err != nil {
		initCancel()
		log.Error("storage_open_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	pageCache, err := app.OpenCache(initCtx, cfg.Redis)
	initCancel()
	if err != nil {
		log.Error("page_cache_open_failed", slog.String("err", err.Error()))
		store.Close()
		os.Exit(1)
	}
	if pageCache != nil {
		defer func() {
			if cerr := pageCache.Close(); cerr != nil {
				log.Warn("page_cache_close_failed", slog.String("err", cerr.Error()))
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svc := service.New(store, *cfg, service.WithCache(pageCache), service.WithMetrics(m))
	log.Info("service_initialized")

	apiHandler := tipshttp.NewRouter(svc, tipshttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
		Metrics: m,
		Auth:    svc,
	})

	var ready int32 // 0 - not ready; 1 - ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		store.Close()
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("tips_service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}
