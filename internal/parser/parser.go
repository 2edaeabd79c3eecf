package parser

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"encomendas/internal/domain"
	"encomendas/internal/port"
)

const (
	// DefaultMaxFileSize caps uploads at 10MB, matching what the admin
	// portal accepts.
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultCacheTTLHours is how long a cached parse result stays valid.
	DefaultCacheTTLHours = 24
)

// List header fields.
var (
	expectedTotalRe = regexp.MustCompile(`Total de objetos:\s*(\d+)`)
	returnDateRe    = regexp.MustCompile(`Data de Devolução:\s*(\d{2}/\d{2}/\d{4})`)
)

// Options control a single parse invocation.
type Options struct {
	EnableCache   bool
	EnableLogging bool
}

// DefaultOptions enables both caching and console logging.
func DefaultOptions() Options {
	return Options{EnableCache: true, EnableLogging: true}
}

// LDIParser extracts structured package records from Correios LDI PDFs.
// Each Parse call is independent; the result cache is the only shared
// state and its writes are idempotent upserts keyed by content hash.
type LDIParser struct {
	extractor     port.TextExtractor
	cache         port.CacheRepository
	maxFileSize   int64
	cacheTTLHours int
}

// New creates an LDIParser. cache may be nil, in which case caching is
// skipped entirely.
func New(extractor port.TextExtractor, cache port.CacheRepository) *LDIParser {
	return &LDIParser{
		extractor:     extractor,
		cache:         cache,
		maxFileSize:   DefaultMaxFileSize,
		cacheTTLHours: DefaultCacheTTLHours,
	}
}

// WithCacheTTL overrides the default cache TTL. Zero or negative hours
// keep the default.
func (p *LDIParser) WithCacheTTL(hours int) *LDIParser {
	if hours > 0 {
		p.cacheTTLHours = hours
	}
	return p
}

// ContentHash returns the cache key for a file's bytes. It is a pure
// function of content, never of filename.
func ContentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Parse reads and parses a PDF file from disk. It returns an error only
// for I/O-domain failures (missing, unreadable or oversized file); every
// parse-domain failure comes back inside the ParseResult.
func (p *LDIParser) Parse(ctx context.Context, path string, opts Options) (*domain.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.ParseBytes(ctx, data, filepath.Base(path), opts)
}

// ParseBytes parses an in-memory PDF. See Parse for the error contract.
func (p *LDIParser) ParseBytes(ctx context.Context, data []byte, fileName string, opts Options) (*domain.ParseResult, error) {
	logger := NewLogger(opts.EnableLogging)
	logger.Info("Start", fmt.Sprintf("processing %s (%d bytes)", fileName, len(data)))

	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, len(data))
	}

	result := &domain.ParseResult{
		Packages: []domain.Package{},
		Errors:   []string{},
		Warnings: []string{},
		Metadata: domain.ParseMetadata{
			FileName: fileName,
			FileSize: int64(len(data)),
			Strategy: domain.StrategyNone,
		},
	}

	hash := ContentHash(data)

	if cached := p.cacheLookup(ctx, hash, opts, logger); cached != nil {
		cached.Metadata.Strategy = domain.StrategyCache
		cached.Metadata.ProcessingMS = logger.TotalDuration().Milliseconds()
		return cached, nil
	}

	raw, err := p.extractor.Extract(ctx, data)
	if err != nil {
		return nil, domain.ClassifyExtractError(err)
	}
	logger.Info("Extract", fmt.Sprintf("%d characters across %d pages", len(raw.Text), raw.Pages))
	result.Metadata.PagesProcessed = raw.Pages

	if raw.Text == "" {
		logger.Error("Extract", domain.ErrNoTextContent.Error())
		return p.finish(ctx, result, hash, fileName, opts, logger), nil
	}

	in := ExtractInput{
		Text:        raw.Text,
		Lines:       NormalizeLines(raw.Text),
		DefaultDate: headerReturnDate(raw.Text),
	}
	expectedTotal := headerExpectedTotal(raw.Text)
	result.Metadata.ExpectedTotal = expectedTotal

	logger.Info("Parse", fmt.Sprintf("header: expected total %d, default date %q", expectedTotal, in.DefaultDate))

	packages, strategy := RunStrategies(in, expectedTotal, logger)
	if len(packages) == 0 {
		logger.Error("Parse", "no strategy extracted any package record")
		packages = []domain.Package{}
	}

	result.Packages = packages
	result.Metadata.Strategy = strategy
	result.Success = len(packages) > 0
	result.TotalPackages = len(packages)
	result.Metadata.ExtractedTotal = len(packages)

	if expectedTotal > 0 && len(packages) != expectedTotal {
		logger.Warn("Validation", fmt.Sprintf(
			"extracted %d of %d declared packages", len(packages), expectedTotal))
	}

	return p.finish(ctx, result, hash, fileName, opts, logger), nil
}

// cacheLookup returns a previously computed result for identical file
// bytes, or nil. Cache failures are soft: parsing proceeds without the
// cache benefit.
func (p *LDIParser) cacheLookup(ctx context.Context, hash string, opts Options, logger *Logger) *domain.ParseResult {
	if !opts.EnableCache || p.cache == nil {
		return nil
	}
	entry, err := p.cache.Lookup(ctx, hash)
	if err != nil {
		logger.Warn("Cache", fmt.Sprintf("lookup failed: %v", err))
		return nil
	}
	if entry == nil {
		return nil
	}
	cached, err := entry.DecodeResult()
	if err != nil {
		logger.Warn("Cache", fmt.Sprintf("corrupt cached result for %s: %v", shortHash(hash), err))
		return nil
	}
	logger.Info("Cache", "hit for "+shortHash(hash))
	return cached
}

// finish collects diagnostics into the result, writes the cache entry and
// stamps timing. Always returns a well-formed result.
func (p *LDIParser) finish(ctx context.Context, result *domain.ParseResult, hash, fileName string, opts Options, logger *Logger) *domain.ParseResult {
	result.Warnings = append(result.Warnings, logger.Warnings()...)
	result.Errors = append(result.Errors, logger.Errors()...)

	if opts.EnableCache && p.cache != nil && result.Success {
		if err := p.cache.Store(ctx, hash, fileName, result, p.cacheTTLHours); err != nil {
			logger.Warn("Cache", fmt.Sprintf("store failed: %v", err))
		} else {
			logger.Info("Cache", "stored result for "+shortHash(hash))
		}
	}

	result.Metadata.ProcessingMS = logger.TotalDuration().Milliseconds()
	logger.Info("Complete", fmt.Sprintf(
		"finished in %dms: success=%v packages=%d strategy=%s",
		result.Metadata.ProcessingMS, result.Success, result.TotalPackages, result.Metadata.Strategy))
	return result
}

func headerExpectedTotal(text string) int {
	m := expectedTotalRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func headerReturnDate(text string) string {
	m := returnDateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
