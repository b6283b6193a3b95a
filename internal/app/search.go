package app

import (
	"context"
	"encoding/json"
	"time"

	"dante_properties/internal/domain"
)

// SearchService answers filtered catalog queries through a best-effort
// cache keyed by the serialized FilterSet. A cache miss always falls
// through to a live query; the cache is an optimization, never a
// correctness requirement.
type SearchService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *SearchService) Search(ctx context.Context, f domain.FilterSet) ([]domain.Property, error) {
	key := "search:" + f.CacheKey()
	var cached []domain.Property
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	rows, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	// copy slice to avoid aliasing the repo's backing array
	out := make([]domain.Property, len(rows))
	copy(out, rows)

	// size guard: don't cache oversized result sets
	if b, _ := json.Marshal(out); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
