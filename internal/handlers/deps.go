package handlers

import (
	"log/slog"

	"github.com/otsempay/pix-gateway/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Cache           ProviderCache
	Bootstrapper    CacheBootstrapper
	Forwarder       PixForwarder
	BankSyncSvc     BankSyncService
	KycSvc          KycService
}
