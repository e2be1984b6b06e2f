package didit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/otsempay/pix-gateway/internal/errs"
)

func TestConfigured(t *testing.T) {
	if NewAdapter("", "wf-1", "http://x", time.Second).Configured() {
		t.Error("Configured = true without api key")
	}
	if NewAdapter("key-1", "", "http://x", time.Second).Configured() {
		t.Error("Configured = true without workflow id")
	}
	if !NewAdapter("key-1", "wf-1", "http://x", time.Second).Configured() {
		t.Error("Configured = false with full credentials")
	}
}

func TestCreateSessionRequestShape(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-Api-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{
			"session_id":       "sess-1",
			"verification_url": "https://verify/x",
		})
	}))
	defer srv.Close()

	a := NewAdapter("key-1", "wf-1", srv.URL, 2*time.Second)
	session, err := a.CreateSession(context.Background(), "cust_1", "a@b.com")
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	if gotPath != "/v2/session/" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAPIKey != "key-1" {
		t.Fatalf("api key header = %q", gotAPIKey)
	}
	if gotBody["workflow_id"] != "wf-1" || gotBody["vendor_data"] != "cust_1" {
		t.Fatalf("body = %+v", gotBody)
	}
	meta, _ := gotBody["metadata"].(map[string]any)
	if meta["customer_id"] != "cust_1" {
		t.Fatalf("metadata = %+v", meta)
	}
	contact, _ := gotBody["contact_details"].(map[string]any)
	if contact["email"] != "a@b.com" || contact["email_lang"] != "pt" {
		t.Fatalf("contact_details = %+v", contact)
	}

	if session.SessionID != "sess-1" || session.VerificationURL != "https://verify/x" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestCreateSessionOmitsContactDetailsWithoutEmail(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"session_id": "sess-1"})
	}))
	defer srv.Close()

	a := NewAdapter("key-1", "wf-1", srv.URL, 2*time.Second)
	if _, err := a.CreateSession(context.Background(), "cust_1", ""); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if _, present := gotBody["contact_details"]; present {
		t.Fatalf("contact_details sent without email: %+v", gotBody)
	}
}

func TestCreateSessionProviderErrorIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"workflow not found"}`))
	}))
	defer srv.Close()

	a := NewAdapter("key-1", "wf-1", srv.URL, 2*time.Second)
	_, err := a.CreateSession(context.Background(), "cust_1", "")

	e, ok := err.(*errs.ExternalServiceError)
	if !ok {
		t.Fatalf("error = %T (%v), want *errs.ExternalServiceError", err, err)
	}
	if e.Service != "didit" {
		t.Fatalf("service = %q", e.Service)
	}
}
