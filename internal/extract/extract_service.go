package extract

import (
	"context"
	"log/slog"

	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/service"
)

// Options are the per-call extraction options. DateLocale defaults to US.
// BypassCache skips both the cache read and the cache write for the call.
type Options struct {
	DateLocale  model.DateLocale
	BypassCache bool
}

// Service wraps the extractor with the memoizing cache. One Service (and
// its cache) belongs to one logical session; callers serialize access.
type Service struct {
	extractor *Extractor
	cache     service.ExtractionCache
}

// NewService wires an extractor to a cache implementation.
func NewService(extractor *Extractor, cache service.ExtractionCache) *Service {
	return &Service{extractor: extractor, cache: cache}
}

// ExtractItemsFromEmails is the primary entry point: cache lookup, then
// extraction on miss. Two calls differing only in locale or timezone are
// different logical requests and miss independently. A cache hit returns
// items with the same identifiers as the original extraction; a bypassed
// call always produces fresh identifiers.
func (s *Service) ExtractItemsFromEmails(ctx context.Context, text, timezone string, opts Options) (*model.ExtractionResult, error) {
	locale := opts.DateLocale
	if locale == "" {
		locale = model.DateLocaleUS
	}
	key := model.CacheKey(text, timezone, locale)

	if opts.BypassCache {
		// A bypassed call that would otherwise have missed still counts as
		// a miss; it never counts as a hit and never writes the cache.
		if _, ok, err := s.cache.Get(ctx, key); err != nil {
			return nil, err
		} else if !ok {
			if err := s.cache.RecordMiss(ctx); err != nil {
				return nil, err
			}
		}
		return s.extractor.Extract(ctx, text, timezone, locale)
	}

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		return nil, err
	} else if ok {
		if err := s.cache.RecordHit(ctx); err != nil {
			return nil, err
		}
		slog.Debug("extraction cache hit", "key", key[:12])
		return cached, nil
	}

	if err := s.cache.RecordMiss(ctx); err != nil {
		return nil, err
	}

	result, err := s.extractor.Extract(ctx, text, timezone, locale)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, key, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CacheStats exposes the cache counters for test and telemetry consumers.
func (s *Service) CacheStats(ctx context.Context) (model.CacheStats, error) {
	return s.cache.Stats(ctx)
}

// ClearCache drops every cached entry.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
