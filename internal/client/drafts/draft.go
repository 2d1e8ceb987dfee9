// Package drafts implements the document edit/create flow. A Draft holds
// the editable fields of one document, including a local tag set that is
// committed together with title and content on submit — never piecemeal.
package drafts

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kbcli/internal/client/api"
	"github.com/dmitrijs2005/kbcli/internal/client/models"
	"github.com/dmitrijs2005/kbcli/internal/common"
)

// State tracks where the flow is.
//
// Transitions:
//
//	new ──Load──► loading ──► editing ──Submit──► submitting ──► done
//	                 │                                │
//	                 ▼                                ▼
//	              failed (terminal)               editing (on HTTP failure)
type State string

const (
	StateNew        State = "new"
	StateLoading    State = "loading"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Draft is the local editable state of one document. A Draft with an
// empty ID submits as a create; with an ID, as an update.
type Draft struct {
	client api.Client

	id      string
	state   State
	Title   string
	Content string
	tags    []string
}

// New starts a create flow, ready for editing.
func New(client api.Client) *Draft {
	return &Draft{client: client, state: StateEditing}
}

// ForDocument starts an edit flow for an existing document. Call Load
// before editing.
func ForDocument(client api.Client, id string) *Draft {
	return &Draft{client: client, id: id, state: StateNew}
}

func (d *Draft) State() State { return d.state }
func (d *Draft) ID() string   { return d.id }

// Load fetches the document and populates the editable fields. A fetch
// failure is terminal: the flow moves to StateFailed and the caller is
// expected to leave it.
func (d *Draft) Load(ctx context.Context) error {
	d.state = StateLoading

	doc, err := d.client.GetDocument(ctx, d.id)
	if err != nil {
		d.state = StateFailed
		return fmt.Errorf("failed to load document: %w", err)
	}

	d.Title = doc.Title
	d.Content = doc.Content
	d.tags = nil
	for _, t := range doc.Tags {
		d.AddTag(t)
	}
	d.state = StateEditing
	return nil
}

// AddTag appends the trimmed, lowercased tag unless it is empty or
// already present. Returns whether the tag was added. Only local state
// changes; nothing is sent until Submit.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, t := range d.tags {
		if t == tag {
			return false
		}
	}
	d.tags = append(d.tags, tag)
	return true
}

// RemoveTag deletes the tag from the local set. Unknown tags are ignored.
func (d *Draft) RemoveTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, t := range d.tags {
		if t == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			return
		}
	}
}

func (d *Draft) Tags() []string {
	out := make([]string, len(d.tags))
	copy(out, d.tags)
	return out
}

// Submit validates and sends the draft in one request: create when there
// is no document ID, update otherwise. Validation failures are reported
// without any network call and keep the flow editable. An HTTP failure
// also returns the flow to StateEditing; success is terminal.
func (d *Draft) Submit(ctx context.Context) (*models.Document, error) {
	title := strings.TrimSpace(d.Title)
	content := strings.TrimSpace(d.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrValidation)
	}

	d.state = StateSubmitting
	payload := api.DocumentPayload{Title: title, Content: content, Tags: d.Tags()}

	var (
		doc *models.Document
		err error
	)
	if d.id == "" {
		doc, err = d.client.CreateDocument(ctx, payload)
	} else {
		doc, err = d.client.UpdateDocument(ctx, d.id, payload)
	}
	if err != nil {
		d.state = StateEditing
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	d.state = StateDone
	return doc, nil
}
