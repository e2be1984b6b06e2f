package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/otsempay/pix-gateway/internal/errs"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

const webhookTypeStatusUpdated = "status.updated"

// sessionCreator is the KYC provider surface used by this service.
type sessionCreator interface {
	Configured() bool
	CreateSession(ctx context.Context, customerID, email string) (models.KycSession, error)
}

// kycStatusUpdater is the backend surface for persisting webhook outcomes.
type kycStatusUpdater interface {
	UpdateKycStatus(ctx context.Context, customerID string, update models.KycStatusUpdate) error
}

type kycService struct {
	didit         sessionCreator
	backend       kycStatusUpdater
	webhookSecret string
}

func NewKycService(didit sessionCreator, backend kycStatusUpdater, webhookSecret string) *kycService {
	return &kycService{
		didit:         didit,
		backend:       backend,
		webhookSecret: webhookSecret,
	}
}

// CreateSession opens a provider verification session for a customer. A
// missing API key or workflow id is a hard configuration failure; KYC must
// not silently degrade.
func (s *kycService) CreateSession(ctx context.Context, customerID, email string) (models.KycSession, error) {
	if !s.didit.Configured() {
		return models.KycSession{}, errs.NewConfigError("didit api key or workflow id not configured")
	}
	if customerID == "" {
		return models.KycSession{}, errs.NewValidationError("customerId is required")
	}

	session, err := s.didit.CreateSession(ctx, customerID, email)
	if err != nil {
		return models.KycSession{}, err
	}

	log := logger.FromContext(ctx)
	log.Info("kyc session created", "customer_id", customerID, "session_id", session.SessionID)
	return session, nil
}

// HandleWebhook ingests a provider status webhook. A nil return means the
// event should be acknowledged, including when the downstream status write
// failed: the provider must not retry-storm during a backend outage, and
// reconciliation of dropped updates is a backend concern.
func (s *kycService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	// Providers send no delivery id, so mint one for log correlation.
	log := logger.FromContext(ctx).With("delivery_id", uuid.NewString())

	switch {
	case s.webhookSecret != "" && signature != "":
		if !validSignature(s.webhookSecret, rawBody, signature) {
			return errs.NewUnauthorizedError("invalid webhook signature")
		}
	case s.webhookSecret == "":
		log.Warn("no webhook secret configured, processing unverified")
	default:
		log.Warn("webhook missing signature header, processing unverified")
	}

	var event models.KycWebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return errs.NewMalformedPayloadError("unparseable webhook body")
	}

	// Other event types are acknowledged untouched so new provider events
	// don't start bouncing.
	if event.WebhookType != webhookTypeStatusUpdated || event.VendorData == "" {
		log.Info("webhook acknowledged without action",
			"webhook_type", event.WebhookType,
			"session_id", event.SessionID)
		return nil
	}

	update := models.KycStatusUpdate{
		AccountStatus:  mapProviderStatus(event.Status),
		DiditSessionID: event.SessionID,
		DiditStatus:    event.Status,
		DiditDecision:  event.Decision,
	}

	if err := s.backend.UpdateKycStatus(ctx, event.VendorData, update); err != nil {
		log.Error("kyc status update failed, acking webhook anyway",
			"customer_id", event.VendorData,
			"session_id", event.SessionID,
			"error", err)
		return nil
	}

	log.Info("kyc status updated",
		"customer_id", event.VendorData,
		"session_id", event.SessionID,
		"account_status", update.AccountStatus)
	return nil
}

// ---- Helpers ----

func validSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	// hmac.Equal is constant time and rejects length mismatches.
	return hmac.Equal([]byte(expected), []byte(signature))
}

// mapProviderStatus translates the provider vocabulary into ours. Anything
// unrecognized lands in review rather than flipping an account state.
func mapProviderStatus(status string) string {
	switch status {
	case "Approved":
		return models.AccountStatusApproved
	case "Declined":
		return models.AccountStatusRejected
	case "In Progress", "Not Started":
		return models.AccountStatusInReview
	default:
		return models.AccountStatusInReview
	}
}
