// Package bankcache holds the active bank provider consulted by the PIX
// proxy on every request. The backend's admin settings remain the source of
// truth; this cache only shortens the lookup to an in-process or Redis read.
package bankcache

import (
	"context"
	"strings"
)

// DefaultProvider is served before any explicit initialization. Routing new
// PIX traffic to Inter when the settings service is unreachable is the
// accepted business fallback.
const DefaultProvider = "inter"

// Cache is the active-provider record. ActiveBank never fails: every
// implementation degrades to DefaultProvider rather than surfacing an error,
// because PIX traffic must keep flowing when the cache backend is down.
type Cache interface {
	ActiveBank(ctx context.Context) string
	SetActiveBank(ctx context.Context, provider string) error
	Initialized(ctx context.Context) bool
}

// Normalize lowercases a provider code. Admin input arrives as "INTER" or
// "FDBANK"; backend routes use lowercase path segments.
func Normalize(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
