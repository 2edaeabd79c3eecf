package service

import (
	"context"
	"log"
	"time"

	"encomendas/internal/port"
)

// CacheSweeper periodically deletes physically expired cache rows.
// Expired entries are already excluded from lookups at read time; the
// sweeper only reclaims storage.
type CacheSweeper struct {
	cache    port.CacheRepository
	interval time.Duration
}

// NewCacheSweeper creates a CacheSweeper.
func NewCacheSweeper(cache port.CacheRepository, interval time.Duration) *CacheSweeper {
	return &CacheSweeper{cache: cache, interval: interval}
}

// Start runs the sweep loop until ctx is canceled. One sweep runs
// immediately so expired rows from a previous run are cleared on boot;
// the repository tolerates the table not existing yet.
func (s *CacheSweeper) Start(ctx context.Context) {
	log.Printf("cacheSweeper: started (interval=%s)", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("cacheSweeper: shutdown")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CacheSweeper) sweep(ctx context.Context) {
	removed, err := s.cache.SweepExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("cacheSweeper: sweep failed: %v", err)
		}
		return
	}
	if removed > 0 {
		log.Printf("cacheSweeper: removed %d expired entries", removed)
	}
}
