package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otsempay/pix-gateway/internal/errs"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/internal/response"
)

// BankSyncService persists admin routing changes and syncs the cache.
type BankSyncService interface {
	Settings(ctx context.Context, authHeader string) (*models.ActiveBankSetting, error)
	SwitchActiveProvider(ctx context.Context, provider string) (*models.SwitchResult, error)
	ToggleProviderEnabled(ctx context.Context, provider string, enabled bool) (*models.ToggleResult, error)
}

type adminHandlers struct {
	ResponseHandler response.ResponseHandler
	BankSyncSvc     BankSyncService
}

func NewAdminHandlers(deps *Deps) *adminHandlers {
	return &adminHandlers{
		ResponseHandler: deps.ResponseHandler,
		BankSyncSvc:     deps.BankSyncSvc,
	}
}

func (h *adminHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Route("/bank", func(r chi.Router) {
		r.Get("/", h.GetSettings)
		r.Put("/active", h.SwitchActive)
		r.Put("/toggle", h.Toggle)
	})
	return r
}

func (h *adminHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.BankSyncSvc.Settings(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, settings)
}

func (h *adminHandlers) SwitchActive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Provider == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("provider is required"))
		return
	}

	result, err := h.BankSyncSvc.SwitchActiveProvider(r.Context(), body.Provider)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *adminHandlers) Toggle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
		Enabled  *bool  `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Provider == "" || body.Enabled == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("provider and enabled are required"))
		return
	}

	result, err := h.BankSyncSvc.ToggleProviderEnabled(r.Context(), body.Provider, *body.Enabled)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
