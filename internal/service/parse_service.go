package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"encomendas/internal/config"
	"encomendas/internal/domain"
	"encomendas/internal/parser"
	"encomendas/internal/port"
)

// ParseService exposes the LDI parsing pipeline to the HTTP layer.
type ParseService interface {
	ParsePDF(ctx context.Context, data []byte, fileName string) (*domain.ParseResult, error)
	CacheStats(ctx context.Context) (*domain.CacheStats, error)
	SweepCache(ctx context.Context) (int, error)
}

type parseService struct {
	parser  *parser.LDIParser
	cache   port.CacheRepository
	archive port.ObjectStorage
	cfg     *config.Config
}

// NewParseService creates a ParseService. archive may be nil when S3
// archival is disabled.
func NewParseService(p *parser.LDIParser, cache port.CacheRepository, archive port.ObjectStorage, cfg *config.Config) ParseService {
	return &parseService{
		parser:  p,
		cache:   cache,
		archive: archive,
		cfg:     cfg,
	}
}

func (s *parseService) ParsePDF(ctx context.Context, data []byte, fileName string) (*domain.ParseResult, error) {
	opts := parser.Options{
		EnableCache:   s.cfg.Parser.EnableCache,
		EnableLogging: s.cfg.Parser.EnableLogging,
	}
	result, err := s.parser.ParseBytes(ctx, data, fileName, opts)
	if err != nil {
		return nil, err
	}

	// Archival is best effort: a storage failure never fails the parse.
	if result.Success && s.archive != nil && s.cfg.S3.Enabled {
		if err := s.archiveOriginal(ctx, data, fileName); err != nil {
			log.Printf("parseService: archiving %s failed: %v", fileName, err)
		}
	}
	return result, nil
}

func (s *parseService) archiveOriginal(ctx context.Context, data []byte, fileName string) error {
	key := fmt.Sprintf("ldi/%s/%s", parser.ContentHash(data), fileName)
	_, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
	})
	return err
}

func (s *parseService) CacheStats(ctx context.Context) (*domain.CacheStats, error) {
	return s.cache.Stats(ctx)
}

func (s *parseService) SweepCache(ctx context.Context) (int, error) {
	return s.cache.SweepExpired(ctx)
}
