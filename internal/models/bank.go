package models

import (
	"time"
)

// Bank provider codes as they appear in backend route paths. Always lowercase.
const (
	ProviderInter  = "inter"
	ProviderFDBank = "fdbank"
)

// ActiveBankSetting mirrors the backend's persisted bank routing setting.
// The backend owns it; this service only caches activeBankProvider.
type ActiveBankSetting struct {
	ActiveBankProvider string    `json:"activeBankProvider"`
	InterEnabled       bool      `json:"interEnabled"`
	FdbankEnabled      bool      `json:"fdbankEnabled"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// SwitchResult is the backend's response to an active-provider change.
type SwitchResult struct {
	Message            string `json:"message"`
	ActiveBankProvider string `json:"activeBankProvider"`
}

// ToggleResult is the backend's response to an enabled-flag change. The
// backend may move the active provider as a side effect (disabling the
// active provider forces a fallback), so the authoritative value comes back.
type ToggleResult struct {
	Message            string `json:"message"`
	ActiveBankProvider string `json:"activeBankProvider"`
	InterEnabled       bool   `json:"interEnabled"`
	FdbankEnabled      bool   `json:"fdbankEnabled"`
}
