package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otsempay/pix-gateway/internal/errs"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/internal/response"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

// KycService bridges the verification provider and the backend.
type KycService interface {
	CreateSession(ctx context.Context, customerID, email string) (models.KycSession, error)
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) error
}

type kycHandlers struct {
	ResponseHandler response.ResponseHandler
	KycSvc          KycService
}

func NewKycHandlers(deps *Deps) *kycHandlers {
	return &kycHandlers{
		ResponseHandler: deps.ResponseHandler,
		KycSvc:          deps.KycSvc,
	}
}

func (h *kycHandlers) KycRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/session", h.CreateSession)
	r.Post("/webhook", h.Webhook)
	return r
}

func (h *kycHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string `json:"customerId"`
		Email      string `json:"email,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}

	session, err := h.KycSvc.CreateSession(r.Context(), body.CustomerID, body.Email)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, session)
}

// Webhook response shapes are the provider's contract, not ours: 401 on a
// bad signature, 200 {received:true} on ack, 500 otherwise.
func (h *kycHandlers) Webhook(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Webhook processing failed",
		})
		return
	}

	err = h.KycSvc.HandleWebhook(r.Context(), rawBody, r.Header.Get("x-webhook-signature"))
	if err != nil {
		log := logger.FromContext(r.Context())
		switch e := err.(type) {
		case *errs.UnauthorizedError:
			log.Warn("webhook rejected", "error", e.Message)
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"message": "Invalid signature",
			})
		default:
			log.Error("webhook processing failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Webhook processing failed",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
