package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/otsempay/pix-gateway/internal/bankcache"
	"github.com/otsempay/pix-gateway/internal/bootstrap"
	"github.com/otsempay/pix-gateway/internal/client/backend"
	"github.com/otsempay/pix-gateway/internal/client/didit"
	"github.com/otsempay/pix-gateway/internal/config"
	"github.com/otsempay/pix-gateway/internal/handlers"
	"github.com/otsempay/pix-gateway/internal/response"
	"github.com/otsempay/pix-gateway/internal/router"
	"github.com/otsempay/pix-gateway/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	godotenv.Load()
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// provider cache: shared via redis when configured, process-local otherwise
	var cache bankcache.Cache
	if bs.Redis != nil {
		cache = bankcache.NewRedis(bs.Redis, cfg.ProviderCacheTTL, bs.Log)
		bs.Log.Info("using shared bank provider cache", "ttl", cfg.ProviderCacheTTL)
	} else {
		cache = bankcache.NewMemory()
		bs.Log.Info("using process-local bank provider cache")
	}

	// clients
	bclient := backend.New(cfg.BackendURL, cfg.UpstreamTimeout)
	dclient := didit.NewAdapter(cfg.DiditAPIKey, cfg.DiditWorkflowID, cfg.DiditBaseURL, cfg.UpstreamTimeout)

	// services
	cbserv := services.NewCacheBootstrapper(cache, bclient)
	bsserv := services.NewBankSyncService(bclient, cache)
	kyserv := services.NewKycService(dclient, bclient, cfg.DiditWebhookSecret)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Cache = cache
	deps.Bootstrapper = cbserv
	deps.Forwarder = bclient
	deps.BankSyncSvc = bsserv
	deps.KycSvc = kyserv

	// router
	r := router.NewRouter(deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		bs.Log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, bs.Log)
		}
	}()

	<-ctx.Done()
	bs.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		bs.Log.Error("shutdown failed", "error", err)
	}
}
