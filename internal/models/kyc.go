package models

import "encoding/json"

// Internal KYC account statuses stored on the backend customer record.
const (
	AccountStatusApproved = "approved"
	AccountStatusRejected = "rejected"
	AccountStatusInReview = "in_review"
)

// KycSession references a verification flow on the provider's side.
// vendor_data carries our customer id so webhooks can be correlated back.
type KycSession struct {
	SessionID       string `json:"sessionId"`
	VerificationURL string `json:"verificationUrl"`
}

// KycWebhookEvent is the provider's webhook payload. Decision is kept raw
// and forwarded to the backend untouched for audit purposes.
type KycWebhookEvent struct {
	WebhookType string          `json:"webhook_type"`
	SessionID   string          `json:"session_id"`
	Status      string          `json:"status"`
	VendorData  string          `json:"vendor_data"`
	Decision    json.RawMessage `json:"decision"`
}

// KycStatusUpdate is the PATCH body sent to the backend customer record.
type KycStatusUpdate struct {
	AccountStatus  string          `json:"accountStatus"`
	DiditSessionID string          `json:"diditSessionId"`
	DiditStatus    string          `json:"diditStatus"`
	DiditDecision  json.RawMessage `json:"diditDecision,omitempty"`
}
