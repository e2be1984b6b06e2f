// Package backend is the HTTP client for the Otsem backend API: bank
// routing settings, customer KYC status, and the raw PIX forward.
package backend

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
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// BankSettings fetches the persisted routing setting. The caller's auth
// header is passed through untouched; whether the endpoint requires it is
// the backend's call.
func (c *Client) BankSettings(ctx context.Context, authHeader string) (*models.ActiveBankSetting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin/settings/bank", nil)
	if err != nil {
		return nil, err
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceError("backend", err.Error(), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.NewExternalServiceError("backend",
			fmt.Sprintf("bank settings returned status %d", resp.StatusCode), false)
	}

	var setting models.ActiveBankSetting
	if err := json.NewDecoder(resp.Body).Decode(&setting); err != nil {
		return nil, errs.NewExternalServiceError("backend", "malformed bank settings response", false)
	}
	return &setting, nil
}

// SetActiveProvider persists a new active provider.
func (c *Client) SetActiveProvider(ctx context.Context, provider string) (*models.SwitchResult, error) {
	var result models.SwitchResult
	if err := c.putJSON(ctx, "/admin/settings/bank/active",
		map[string]string{"provider": provider}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ToggleProvider flips a provider's enabled flag. The response carries the
// authoritative active provider, which may have changed as a side effect.
func (c *Client) ToggleProvider(ctx context.Context, provider string, enabled bool) (*models.ToggleResult, error) {
	var result models.ToggleResult
	if err := c.putJSON(ctx, "/admin/settings/bank/toggle",
		map[string]any{"provider": provider, "enabled": enabled}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateKycStatus patches a customer's KYC status after a verified webhook.
func (c *Client) UpdateKycStatus(ctx context.Context, customerID string, update models.KycStatusUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/customers/%s/kyc-status", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewExternalServiceError("backend", err.Error(), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.NewExternalServiceError("backend",
			fmt.Sprintf("kyc status update returned status %d", resp.StatusCode), false)
	}
	return nil
}

// ForwardPix relays a PIX operation to the bank-specific backend route. The
// body is streamed as-is; re-serializing could corrupt bank-specific payload
// shapes. The response is returned unread so the handler can relay status,
// content type, and body verbatim. The caller owns resp.Body.
func (c *Client) ForwardPix(ctx context.Context, method, bank, subPath, rawQuery, authHeader, contentType string, body io.Reader) (*http.Response, error) {
	url := fmt.Sprintf("%s/%s/pix/%s", c.baseURL, bank, subPath)
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	return c.http.Do(req)
}

// ---- Helpers ----

func (c *Client) putJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewExternalServiceError("backend", err.Error(), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.NewExternalServiceError("backend",
			fmt.Sprintf("%s returned status %d", path, resp.StatusCode), false)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewExternalServiceError("backend", "malformed settings response", false)
	}
	return nil
}
