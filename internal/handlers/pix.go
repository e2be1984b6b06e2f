package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otsempay/pix-gateway/pkg/logger"
)

// CacheBootstrapper lazily populates the provider cache after a cold start.
type CacheBootstrapper interface {
	EnsureBankCache(ctx context.Context, authHeader string)
}

// ProviderCache resolves the active bank. Reads never fail.
type ProviderCache interface {
	ActiveBank(ctx context.Context) string
	SetActiveBank(ctx context.Context, provider string) error
}

// PixForwarder relays a PIX operation to the bank-specific backend route.
type PixForwarder interface {
	ForwardPix(ctx context.Context, method, bank, subPath, rawQuery, authHeader, contentType string, body io.Reader) (*http.Response, error)
}

type pixHandlers struct {
	bootstrapper CacheBootstrapper
	cache        ProviderCache
	forwarder    PixForwarder
}

func NewPixHandlers(deps *Deps) *pixHandlers {
	return &pixHandlers{
		bootstrapper: deps.Bootstrapper,
		cache:        deps.Cache,
		forwarder:    deps.Forwarder,
	}
}

func (h *pixHandlers) PixRoutes() chi.Router {
	r := chi.NewRouter()
	// any verb; the customer-facing path shape is stable across bank switches
	r.HandleFunc("/*", h.Forward)
	return r
}

// Forward resolves the active bank and relays the request verbatim. One
// attempt, no retry: PIX operations are not generally idempotent and retry
// safety depends on the downstream bank API.
func (h *pixHandlers) Forward(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authHeader := r.Header.Get("Authorization")

	h.bootstrapper.EnsureBankCache(ctx, authHeader)
	bank := h.cache.ActiveBank(ctx)
	subPath := chi.URLParam(r, "*")

	resp, err := h.forwarder.ForwardPix(ctx, r.Method, bank, subPath, r.URL.RawQuery,
		authHeader, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error("pix forward failed", "bank", bank, "path", subPath, "error", err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Failed to connect to payment service",
		})
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("pix response relay interrupted", "bank", bank, "path", subPath, "error", err)
	}
}
