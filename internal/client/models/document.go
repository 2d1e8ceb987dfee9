package models

import (
	"strings"
	"time"
)

// Document is a titled, tagged text record owned by the backend. The client
// never mutates a Document in place; it refetches after every mutation.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Summary   string    `json:"summary,omitempty"`
	CreatedBy Author    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTag reports whether the document carries the given tag. Comparison is
// case-insensitive; stored tags are already lowercased by the backend but
// older records may predate that.
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// MatchesText reports whether the query occurs, case-insensitively, in the
// document's title, content, or summary. An empty query matches everything.
func (d *Document) MatchesText(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.Title), q) ||
		strings.Contains(strings.ToLower(d.Content), q) ||
		strings.Contains(strings.ToLower(d.Summary), q)
}

// SearchResult is a Document extended with the backend's relevance score.
// Results are never cached; they live for one query-render cycle.
type SearchResult struct {
	Document
	RelevanceScore float64 `json:"relevanceScore,omitempty"`
}
