package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"dante_properties/internal/domain"
)

// CatalogLoader performs the bulk-load step: feed entry in, validated
// upsert out. The catalog is replaced wholesale on reload; records with
// missing required attributes are recorded as misses and skipped without
// failing the load.
type CatalogLoader struct {
	repo domain.PropertyRepository
}

func NewCatalogLoader(r domain.PropertyRepository) *CatalogLoader {
	return &CatalogLoader{repo: r}
}

// LoadRecord maps and validates one raw feed entry. Returns (true, nil)
// when the record was stored, (false, nil) when it was rejected at ingest.
func (l *CatalogLoader) LoadRecord(ctx context.Context, raw map[string]any) (bool, error) {
	p := mapFeedProperty(raw)
	if err := p.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			log.Warn().Str("external_id", p.ExternalID).Msg("feed record rejected, missing required attributes")
			_ = l.repo.LogMiss(ctx, p.ExternalID, "missing required attributes")
			return false, nil
		}
		return false, err
	}
	if err := l.repo.UpsertProperty(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}
