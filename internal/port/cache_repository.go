package port

import (
	"context"

	"encomendas/internal/domain"
)

// CacheRepository defines the contract for the parse result cache.
//
// Lookup must apply logical expiry at read time: an entry past its
// expires_at is treated as absent even if the sweep has not deleted it yet.
// Store has upsert semantics keyed on the content hash.
type CacheRepository interface {
	Lookup(ctx context.Context, fileHash string) (*domain.CacheEntry, error)
	Store(ctx context.Context, fileHash, originalName string, result *domain.ParseResult, ttlHours int) error
	SweepExpired(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*domain.CacheStats, error)
}
