package publisher

import (
	"context"
	"fmt"
	"sync"

	"github.com/fekuna/omnipos-production-service/internal/model"
)

// Indexer is satisfied by *search.Client.
type Indexer interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
}

const auditMapping = `{
	"mappings": {
		"properties": {
			"merchant_id": { "type": "keyword" },
			"article_id": { "type": "keyword" },
			"article_number": { "type": "keyword" },
			"action": { "type": "keyword" },
			"floor": { "type": "keyword" },
			"from_floor": { "type": "keyword" },
			"to_floor": { "type": "keyword" },
			"quality_status": { "type": "keyword" },
			"quantity": { "type": "integer" },
			"remarks": { "type": "text" },
			"created_by": { "type": "keyword" },
			"created_at": { "type": "date" }
		}
	}
}`

// SearchSink indexes audit entries so the trail can be searched by floor,
// action or remarks.
type SearchSink struct {
	es    Indexer
	index string

	mu    sync.Mutex
	ready bool
}

func NewSearchSink(es Indexer, index string) *SearchSink {
	return &SearchSink{es: es, index: index}
}

func (s *SearchSink) Name() string { return "elasticsearch" }

func (s *SearchSink) Append(ctx context.Context, e *model.AuditLog) error {
	if err := s.ensureIndex(ctx); err != nil {
		return err
	}
	return s.es.Index(ctx, s.index, e.ID, e)
}

// ensureIndex creates the index on first use and retries on the next
// append until creation succeeds. An existing index counts as success.
func (s *SearchSink) ensureIndex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.es.CreateIndex(ctx, s.index, auditMapping); err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	s.ready = true
	return nil
}
