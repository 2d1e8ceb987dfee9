package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kbcli/internal/client/api"
	"github.com/dmitrijs2005/kbcli/internal/client/localstore"
	"github.com/dmitrijs2005/kbcli/internal/client/models"
	"github.com/dmitrijs2005/kbcli/internal/common"
	"github.com/dmitrijs2005/kbcli/internal/logging"
)

// SearchService issues one-shot search requests and maintains the bounded
// recent-search list: at most five distinct queries, most recent first,
// persisted across runs.
type SearchService interface {
	// Restore loads the persisted recent-search list. Call once at startup.
	Restore(ctx context.Context) error

	// Search runs one query. The semantic flag selects the backend's
	// ranking mode and is otherwise opaque here. A successful search with
	// a non-blank query records it in the recent list.
	Search(ctx context.Context, query string, semantic bool) ([]models.SearchResult, error)

	Recent() []string
}

type searchService struct {
	client api.Client
	store  localstore.Store
	log    logging.Logger

	recent []string
}

func NewSearchService(client api.Client, store localstore.Store, log logging.Logger) SearchService {
	return &searchService{client: client, store: store, log: log}
}

func (s *searchService) Restore(ctx context.Context) error {
	data, err := s.store.Get(ctx, common.StoreKeyRecentSearches)
	if err != nil {
		return fmt.Errorf("failed to read recent searches: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.recent); err != nil {
		// A corrupt list is not worth failing startup over; start fresh.
		s.log.Warn(ctx, "discarding corrupt recent-search list", "err", err)
		s.recent = nil
	}
	if len(s.recent) > common.MaxRecentSearches {
		s.recent = s.recent[:common.MaxRecentSearches]
	}
	return nil
}

func (s *searchService) Search(ctx context.Context, query string, semantic bool) ([]models.SearchResult, error) {
	results, err := s.client.Search(ctx, query, semantic)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}

	// A blank query is a valid list-everything request, but it is not
	// worth remembering.
	if strings.TrimSpace(query) != "" {
		s.record(ctx, query)
	}
	return results, nil
}

// record moves query to the front of the recent list, dropping an earlier
// occurrence and anything beyond the cap, then persists the list. Persist
// failures are logged, not surfaced: the search itself succeeded.
func (s *searchService) record(ctx context.Context, query string) {
	next := make([]string, 0, common.MaxRecentSearches)
	next = append(next, query)
	for _, q := range s.recent {
		if q == query {
			continue
		}
		next = append(next, q)
		if len(next) == common.MaxRecentSearches {
			break
		}
	}
	s.recent = next

	data, err := json.Marshal(s.recent)
	if err != nil {
		s.log.Warn(ctx, "failed to encode recent searches", "err", err)
		return
	}
	if err := s.store.Set(ctx, common.StoreKeyRecentSearches, data); err != nil {
		s.log.Warn(ctx, "failed to persist recent searches", "err", err)
	}
}

func (s *searchService) Recent() []string {
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}
