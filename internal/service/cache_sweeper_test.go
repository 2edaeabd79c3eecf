package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"encomendas/internal/service"
	"encomendas/mocks"
)

func TestCacheSweeper_SweepsOnceOnBoot(t *testing.T) {
	cache := new(mocks.MockCacheRepository)
	cache.On("SweepExpired", mock.Anything).Return(2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With an already-canceled context Start performs the boot sweep and
	// returns without waiting for a tick.
	sweeper := service.NewCacheSweeper(cache, time.Hour)
	sweeper.Start(ctx)

	cache.AssertNumberOfCalls(t, "SweepExpired", 1)
}

func TestCacheSweeper_SweepsPeriodically(t *testing.T) {
	cache := new(mocks.MockCacheRepository)
	calls := make(chan struct{}, 16)
	cache.On("SweepExpired", mock.Anything).
		Run(func(mock.Arguments) { calls <- struct{}{} }).
		Return(0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := service.NewCacheSweeper(cache, 10*time.Millisecond)
	go sweeper.Start(ctx)

	// Boot sweep plus at least one tick.
	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for sweep")
		}
	}
}
