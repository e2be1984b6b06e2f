package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/otsempay/pix-gateway/internal/bankcache"
)

func newBankProviderHandler() (*bankProviderHandlers, *bankcache.Memory) {
	cache := bankcache.NewMemory()
	return NewBankProviderHandlers(&Deps{Cache: cache}), cache
}

func TestGetProviderDefault(t *testing.T) {
	h, _ := newBankProviderHandler()

	rr := httptest.NewRecorder()
	h.GetProvider(rr, httptest.NewRequest(http.MethodGet, "/api/bank-provider", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body["provider"] != "inter" {
		t.Fatalf("provider = %q, want default %q", body["provider"], "inter")
	}
}

func TestSetProviderUpdatesCache(t *testing.T) {
	h, cache := newBankProviderHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/bank-provider",
		strings.NewReader(`{"provider":"FDBANK"}`))
	rr := httptest.NewRecorder()
	h.SetProvider(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body map[string]string
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body["provider"] != "fdbank" {
		t.Fatalf("provider = %q, want normalized %q", body["provider"], "fdbank")
	}
	if got := cache.ActiveBank(context.Background()); got != "fdbank" {
		t.Fatalf("cache ActiveBank = %q", got)
	}
}

func TestSetProviderMissingField(t *testing.T) {
	h, cache := newBankProviderHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/bank-provider", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	h.SetProvider(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if cache.Initialized(context.Background()) {
		t.Fatal("cache mutated by invalid request")
	}
}
