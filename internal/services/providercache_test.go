package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/otsempay/pix-gateway/internal/bankcache"
	"github.com/otsempay/pix-gateway/internal/models"
	"github.com/otsempay/pix-gateway/pkg/logger"
)

type fakeSettingsFetcher struct {
	setting *models.ActiveBankSetting
	err     error
	delay   time.Duration
	calls   atomic.Int64

	gotAuth string
}

func (f *fakeSettingsFetcher) BankSettings(ctx context.Context, authHeader string) (*models.ActiveBankSetting, error) {
	f.calls.Add(1)
	f.gotAuth = authHeader
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.setting, nil
}

func testLogger() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelInfo))
}

func testCtx() context.Context {
	return logger.ToContext(context.Background(), testLogger())
}

func TestEnsureBankCacheSkipsFetchWhenInitialized(t *testing.T) {
	cache := bankcache.NewMemory()
	if err := cache.SetActiveBank(context.Background(), "fdbank"); err != nil {
		t.Fatal(err)
	}
	fetcher := &fakeSettingsFetcher{}

	b := NewCacheBootstrapper(cache, fetcher)
	b.EnsureBankCache(testCtx(), "")

	if n := fetcher.calls.Load(); n != 0 {
		t.Fatalf("expected 0 settings fetches, got %d", n)
	}
}

func TestEnsureBankCachePopulatesFromBackend(t *testing.T) {
	cache := bankcache.NewMemory()
	fetcher := &fakeSettingsFetcher{
		setting: &models.ActiveBankSetting{ActiveBankProvider: "FDBANK"},
	}

	b := NewCacheBootstrapper(cache, fetcher)
	b.EnsureBankCache(testCtx(), "Bearer tok-1")

	if got := cache.ActiveBank(context.Background()); got != "fdbank" {
		t.Fatalf("ActiveBank = %q, want %q", got, "fdbank")
	}
	if fetcher.gotAuth != "Bearer tok-1" {
		t.Fatalf("auth header = %q, want pass-through", fetcher.gotAuth)
	}
}

func TestEnsureBankCacheFailsOpenOnBackendError(t *testing.T) {
	cache := bankcache.NewMemory()
	fetcher := &fakeSettingsFetcher{err: errors.New("connection refused")}

	b := NewCacheBootstrapper(cache, fetcher)
	b.EnsureBankCache(testCtx(), "")

	if got := cache.ActiveBank(context.Background()); got != "inter" {
		t.Fatalf("ActiveBank = %q, want default %q", got, "inter")
	}
	if cache.Initialized(context.Background()) {
		t.Fatal("cache marked initialized after failed bootstrap")
	}
}

func TestEnsureBankCacheIgnoresEmptyProvider(t *testing.T) {
	cache := bankcache.NewMemory()
	fetcher := &fakeSettingsFetcher{setting: &models.ActiveBankSetting{}}

	b := NewCacheBootstrapper(cache, fetcher)
	b.EnsureBankCache(testCtx(), "")

	if cache.Initialized(context.Background()) {
		t.Fatal("cache marked initialized from empty provider")
	}
}

func TestEnsureBankCacheRetriesOnNextInvocation(t *testing.T) {
	cache := bankcache.NewMemory()
	fetcher := &fakeSettingsFetcher{err: errors.New("down")}
	b := NewCacheBootstrapper(cache, fetcher)

	b.EnsureBankCache(testCtx(), "")
	fetcher.err = nil
	fetcher.setting = &models.ActiveBankSetting{ActiveBankProvider: "FDBANK"}
	b.EnsureBankCache(testCtx(), "")

	if n := fetcher.calls.Load(); n != 2 {
		t.Fatalf("expected 2 settings fetches, got %d", n)
	}
	if got := cache.ActiveBank(context.Background()); got != "fdbank" {
		t.Fatalf("ActiveBank = %q, want %q", got, "fdbank")
	}
}

func TestEnsureBankCacheDedupesConcurrentColdStarts(t *testing.T) {
	cache := bankcache.NewMemory()
	fetcher := &fakeSettingsFetcher{
		setting: &models.ActiveBankSetting{ActiveBankProvider: "FDBANK"},
		delay:   50 * time.Millisecond,
	}
	b := NewCacheBootstrapper(cache, fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.EnsureBankCache(testCtx(), "")
		}()
	}
	wg.Wait()

	if n := fetcher.calls.Load(); n != 1 {
		t.Fatalf("expected 1 shared settings fetch, got %d", n)
	}
	if got := cache.ActiveBank(context.Background()); got != "fdbank" {
		t.Fatalf("ActiveBank = %q, want %q", got, "fdbank")
	}
}
