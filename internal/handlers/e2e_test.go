package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/otsempay/pix-gateway/internal/bankcache"
	"github.com/otsempay/pix-gateway/internal/client/backend"
	"github.com/otsempay/pix-gateway/internal/response"
	"github.com/otsempay/pix-gateway/internal/services"
)

// Admin switches the provider, then the next customer PIX request in the
// same process routes to the new bank without waiting for a re-bootstrap.
func TestSwitchThenProxyRoutesToNewBank(t *testing.T) {
	var pixPaths []string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/admin/settings/bank/active" && r.Method == http.MethodPut:
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(map[string]string{
				"message":            "updated",
				"activeBankProvider": body["provider"],
			})
		case strings.Contains(r.URL.Path, "/pix/"):
			pixPaths = append(pixPaths, r.URL.Path)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	cache := bankcache.NewMemory()
	bclient := backend.New(upstream.URL, 2*time.Second)

	deps := &Deps{
		ResponseHandler: response.New(testLogger()),
		Cache:           cache,
		Bootstrapper:    services.NewCacheBootstrapper(cache, bclient),
		Forwarder:       bclient,
		BankSyncSvc:     services.NewBankSyncService(bclient, cache),
	}

	admin := NewAdminHandlers(deps)
	mux := newPixMux(deps)

	// admin switches the active provider
	req := httptest.NewRequest(http.MethodPut, "/api/admin/bank/active",
		strings.NewReader(`{"provider":"FDBANK"}`))
	rr := httptest.NewRecorder()
	admin.SwitchActive(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("switch status = %d, body=%s", rr.Code, rr.Body.String())
	}

	// next customer request routes to fdbank
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/pix/qrcode", strings.NewReader(`{}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("proxy status = %d", rr.Code)
	}

	if len(pixPaths) != 1 || pixPaths[0] != "/fdbank/pix/qrcode" {
		t.Fatalf("pix forwarded to %v, want [/fdbank/pix/qrcode]", pixPaths)
	}
}
