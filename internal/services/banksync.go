package services

import (
	"context"

	"github.com/otsempay/pix-gateway/internal/bankcache"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

// settingsWriter is the backend surface needed by the admin synchronizer.
type settingsWriter interface {
	BankSettings(ctx context.Context, authHeader string) (*models.ActiveBankSetting, error)
	SetActiveProvider(ctx context.Context, provider string) (*models.SwitchResult, error)
	ToggleProvider(ctx context.Context, provider string, enabled bool) (*models.ToggleResult, error)
}

// bankSyncService persists admin routing changes on the backend and pushes
// the accepted value into the provider cache so proxied requests in this
// process pick it up immediately instead of waiting for a re-bootstrap.
type bankSyncService struct {
	backend settingsWriter
	cache   bankcache.Cache
}

func NewBankSyncService(backend settingsWriter, cache bankcache.Cache) *bankSyncService {
	return &bankSyncService{
		backend: backend,
		cache:   cache,
	}
}

func (s *bankSyncService) Settings(ctx context.Context, authHeader string) (*models.ActiveBankSetting, error) {
	return s.backend.BankSettings(ctx, authHeader)
}

// SwitchActiveProvider persists the change, then syncs the local cache. The
// backend write is authoritative; the cache push is best-effort and its
// failure is swallowed, since the next bootstrap would read the persisted
// value anyway. No local state changes when the backend rejects the write.
func (s *bankSyncService) SwitchActiveProvider(ctx context.Context, provider string) (*models.SwitchResult, error) {
	result, err := s.backend.SetActiveProvider(ctx, provider)
	if err != nil {
		return nil, err
	}

	accepted := result.ActiveBankProvider
	if accepted == "" {
		accepted = provider
	}
	s.pushCache(ctx, accepted)

	return result, nil
}

// ToggleProviderEnabled flips an enabled flag. The active provider is only
// pushed to the cache from the backend's response, which is authoritative:
// disabling the active provider can force a fallback on the backend side.
func (s *bankSyncService) ToggleProviderEnabled(ctx context.Context, provider string, enabled bool) (*models.ToggleResult, error) {
	result, err := s.backend.ToggleProvider(ctx, provider, enabled)
	if err != nil {
		return nil, err
	}

	if result.ActiveBankProvider != "" {
		s.pushCache(ctx, result.ActiveBankProvider)
	}

	return result, nil
}

func (s *bankSyncService) pushCache(ctx context.Context, provider string) {
	if err := s.cache.SetActiveBank(ctx, provider); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("bank cache push failed after settings write", "provider", provider, "error", err)
	}
}
