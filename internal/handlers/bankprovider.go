package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otsempay/pix-gateway/pkg/logger"
)

// bankProviderHandlers exposes the cache control endpoints. Response shapes
// here are part of the web app contract, so no success envelope.
type bankProviderHandlers struct {
	cache ProviderCache
}

func NewBankProviderHandlers(deps *Deps) *bankProviderHandlers {
	return &bankProviderHandlers{cache: deps.Cache}
}

func (h *bankProviderHandlers) BankProviderRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetProvider)
	r.Post("/", h.SetProvider)
	return r
}

func (h *bankProviderHandlers) GetProvider(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"provider": h.cache.ActiveBank(r.Context()),
	})
}

func (h *bankProviderHandlers) SetProvider(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Provider == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "provider is required",
		})
		return
	}

	if err := h.cache.SetActiveBank(r.Context(), body.Provider); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("bank provider cache set failed", "provider", body.Provider, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "failed to set provider",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"provider": h.cache.ActiveBank(r.Context()),
	})
}

// writeJSON emits raw (non-enveloped) JSON for endpoints whose shapes are
// fixed by external contracts.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
