package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/kbcli/internal/client/api"
	"github.com/dmitrijs2005/kbcli/internal/client/models"
)

// DocumentService is a read-through cache over the backend's document
// collection. Refresh replaces the whole cache; every mutation refetches —
// the cache is never patched optimistically. Filter and Tags are pure over
// the cached list.
type DocumentService interface {
	Refresh(ctx context.Context) error
	All() []models.Document
	Filter(query string, selectedTags []string) []models.Document
	Tags() []string

	Get(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, p api.DocumentPayload) (*models.Document, error)
	Update(ctx context.Context, id string, p api.DocumentPayload) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	Summarize(ctx context.Context, id string) (*models.Document, error)
	GenerateTags(ctx context.Context, id string) (*models.Document, error)
}

type documentService struct {
	client api.Client

	cache []models.Document
	tags  []string
}

func NewDocumentService(client api.Client) DocumentService {
	return &documentService{client: client}
}

// Refresh fetches the full list and recomputes the distinct tag set. On
// failure the cache keeps its previous contents untouched.
func (s *documentService) Refresh(ctx context.Context) error {
	docs, err := s.client.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	s.cache = docs
	s.tags = distinctTags(docs)
	return nil
}

// distinctTags is the lowercased union of all documents' tags, sorted for
// stable display.
func distinctTags(docs []models.Document) []string {
	seen := make(map[string]struct{})
	for _, d := range docs {
		for _, t := range d.Tags {
			seen[strings.ToLower(t)] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func (s *documentService) All() []models.Document {
	out := make([]models.Document, len(s.cache))
	copy(out, s.cache)
	return out
}

// Filter applies the text query and tag selection to the cached list.
// Text matching is a case-insensitive substring match on title, content,
// or summary. Tag matching requires the document to carry every selected
// tag. Both compose by AND; empty inputs are the identity, preserving the
// cache's original order.
func (s *documentService) Filter(query string, selectedTags []string) []models.Document {
	query = strings.TrimSpace(query)

	tags := make([]string, 0, len(selectedTags))
	for _, t := range selectedTags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}

	out := make([]models.Document, 0, len(s.cache))
	for _, d := range s.cache {
		if !d.MatchesText(query) {
			continue
		}
		if !hasAllTags(&d, tags) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func hasAllTags(d *models.Document, tags []string) bool {
	for _, t := range tags {
		if !d.HasTag(t) {
			return false
		}
	}
	return true
}

func (s *documentService) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *documentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

func (s *documentService) Create(ctx context.Context, p api.DocumentPayload) (*models.Document, error) {
	doc, err := s.client.CreateDocument(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, s.Refresh(ctx)
}

func (s *documentService) Update(ctx context.Context, id string, p api.DocumentPayload) (*models.Document, error) {
	doc, err := s.client.UpdateDocument(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return doc, s.Refresh(ctx)
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return s.Refresh(ctx)
}

func (s *documentService) Summarize(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.client.SummarizeDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize document: %w", err)
	}
	return doc, s.Refresh(ctx)
}

func (s *documentService) GenerateTags(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.client.GenerateTags(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tags: %w", err)
	}
	return doc, s.Refresh(ctx)
}
