package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"encomendas/internal/config"
	"encomendas/internal/extractor/pdftext"
	"encomendas/internal/parser"
	"encomendas/internal/port"
	"encomendas/internal/repository/postgres"
	"encomendas/internal/router"
	"encomendas/internal/service"
	s3storage "encomendas/internal/storage/s3"

	"encomendas/internal/handler"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	cacheRepo := postgres.NewPDFCacheRepo(db)

	var archive port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	ldiParser := parser.New(pdftext.New(), cacheRepo).WithCacheTTL(cfg.Parser.CacheTTLHours)
	parseSvc := service.NewParseService(ldiParser, cacheRepo, archive, cfg)

	parseH := handler.NewParseHandler(parseSvc)
	cacheH := handler.NewCacheHandler(parseSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(parseH, cacheH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := service.NewCacheSweeper(cacheRepo, cfg.Sweep.Interval())
	go sweeper.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
