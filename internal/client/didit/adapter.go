// Package didit adapts the Didit verification API used for KYC onboarding.
package didit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/otsempay/pix-gateway/internal/errs"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

type Adapter struct {
	apiKey     string
	workflowID string
	baseURL    string
	http       *http.Client
}

func NewAdapter(apiKey, workflowID, baseURL string, timeout time.Duration) *Adapter {
	return &Adapter{
		apiKey:     apiKey,
		workflowID: workflowID,
		baseURL:    baseURL,
		http:       &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the provider credentials are present. Session
// creation must hard-fail without them; KYC is not a degrade-gracefully path.
func (a *Adapter) Configured() bool {
	return a.apiKey != "" && a.workflowID != ""
}

type sessionRequest struct {
	WorkflowID     string            `json:"workflow_id"`
	VendorData     string            `json:"vendor_data"`
	Metadata       map[string]string `json:"metadata"`
	ContactDetails *contactDetails   `json:"contact_details,omitempty"`
}

type contactDetails struct {
	Email     string `json:"email"`
	EmailLang string `json:"email_lang"`
}

type sessionResponse struct {
	SessionID       string `json:"session_id"`
	VerificationURL string `json:"verification_url"`
}

// CreateSession opens a verification session correlated to our customer id.
// When an email is given the provider sends localized (Portuguese) mails.
func (a *Adapter) CreateSession(ctx context.Context, customerID, email string) (models.KycSession, error) {
	payload := sessionRequest{
		WorkflowID: a.workflowID,
		VendorData: customerID,
		Metadata:   map[string]string{"customer_id": customerID},
	}
	if email != "" {
		payload.ContactDetails = &contactDetails{Email: email, EmailLang: "pt"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.KycSession{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v2/session/", bytes.NewReader(body))
	if err != nil {
		return models.KycSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", a.apiKey)

	resp, err := a.http.Do(req)
	if err != nil {
		return models.KycSession{}, errs.NewExternalServiceError("didit", err.Error(), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Provider error bodies stay in the logs; callers get a generic failure.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log := logger.FromContext(ctx)
		log.Error("didit session creation failed",
			"status", resp.StatusCode,
			"body", string(detail))
		return models.KycSession{}, errs.NewExternalServiceError("didit",
			fmt.Sprintf("session creation returned status %d", resp.StatusCode), false)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return models.KycSession{}, errs.NewExternalServiceError("didit", "malformed session response", false)
	}

	return models.KycSession{
		SessionID:       sr.SessionID,
		VerificationURL: sr.VerificationURL,
	}, nil
}
