package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/otsempay/pix-gateway/internal/bankcache"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

// settingsFetcher is the backend surface needed to bootstrap the cache.
type settingsFetcher interface {
	BankSettings(ctx context.Context, authHeader string) (*models.ActiveBankSetting, error)
}

// cacheBootstrapper populates the provider cache on the first request after
// a cold start. One best-effort fetch per invocation, no retries: if the
// settings service is down, the next proxied request tries again and traffic
// keeps flowing on the default provider meanwhile.
type cacheBootstrapper struct {
	cache    bankcache.Cache
	settings settingsFetcher
	group    singleflight.Group
}

func NewCacheBootstrapper(cache bankcache.Cache, settings settingsFetcher) *cacheBootstrapper {
	return &cacheBootstrapper{
		cache:    cache,
		settings: settings,
	}
}

// EnsureBankCache is a no-op once the cache is initialized. Concurrent
// cold-start requests share a single settings fetch instead of stampeding
// the backend. The caller's auth header is passed through; the settings
// endpoint may or may not require it.
func (b *cacheBootstrapper) EnsureBankCache(ctx context.Context, authHeader string) {
	if b.cache.Initialized(ctx) {
		return
	}

	b.group.Do("bank-settings", func() (any, error) {
		log := logger.FromContext(ctx)

		setting, err := b.settings.BankSettings(ctx, authHeader)
		if err != nil {
			log.Warn("bank cache bootstrap failed, keeping current provider", "error", err)
			return nil, nil
		}
		if setting.ActiveBankProvider == "" {
			log.Warn("bank settings missing activeBankProvider, keeping current provider")
			return nil, nil
		}

		if err := b.cache.SetActiveBank(ctx, setting.ActiveBankProvider); err != nil {
			log.Warn("bank cache write failed", "error", err)
			return nil, nil
		}

		log.Info("bank cache bootstrapped", "provider", bankcache.Normalize(setting.ActiveBankProvider))
		return nil, nil
	})
}
