package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dukapos/pos-terminal/pkg/logger"
	"github.com/dukapos/pos-terminal/pkg/metrics"
)

type searchClient interface {
	Search(ctx context.Context, token, query string) ([]ProductSnapshot, error)
}

// Service exposes catalog lookup to the register. Lookup failures are
// swallowed into an empty result so they never block cart editing.
type Service interface {
	Search(ctx context.Context, token, query string, limit int) []ProductSnapshot
}

type service struct {
	client         searchClient
	logg           *logger.Logger
	metrics        *metrics.EngineMetrics
	minQueryLength int

	// seq orders keystroke-driven queries so a slow early response
	// cannot overwrite a faster later one (last query wins).
	seq atomic.Uint64
}

// NewService builds the lookup service.
func NewService(client searchClient, logg *logger.Logger, m *metrics.EngineMetrics, minQueryLength int) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("search client required")
	}
	if minQueryLength < 1 {
		minQueryLength = 1
	}
	return &service{
		client:         client,
		logg:           logg,
		metrics:        m,
		minQueryLength: minQueryLength,
	}, nil
}

// Search truncates to limit terminal-side; the backend caps its own
// page but takes no limit parameter.
func (s *service) Search(ctx context.Context, token, query string, limit int) []ProductSnapshot {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.minQueryLength {
		return []ProductSnapshot{}
	}

	seq := s.seq.Add(1)

	results, err := s.client.Search(ctx, token, trimmed)
	if err != nil {
		s.metrics.IncLookup("failed")
		if s.logg != nil {
			ctx = s.logg.WithFields(ctx, map[string]any{"query": trimmed, "error": err.Error()})
			s.logg.Warn(ctx, "catalog lookup failed")
		}
		return []ProductSnapshot{}
	}

	if s.seq.Load() != seq {
		s.metrics.IncLookup("stale")
		return []ProductSnapshot{}
	}

	s.metrics.IncLookup("ok")
	if results == nil {
		results = []ProductSnapshot{}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
