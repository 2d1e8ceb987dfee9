package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/kbcli/internal/client/api"
	"github.com/dmitrijs2005/kbcli/internal/client/localstore"
	"github.com/dmitrijs2005/kbcli/internal/client/models"
	"github.com/dmitrijs2005/kbcli/internal/common"
	"github.com/dmitrijs2005/kbcli/internal/logging"
	"github.com/google/uuid"
)

// FallbackAnswer is the fixed transcript entry recorded when the backend
// fails to answer.
const FallbackAnswer = "Sorry, I couldn't get an answer. Please try again."

// QAService owns one Q&A transcript: an append-only ordered sequence of
// question/answer entries, fully persisted after every append and fully
// restored on startup.
//
// Invariant: every Ask appends exactly one question entry and exactly one
// answer-or-fallback entry, in that order. Concurrent Asks are rejected
// with common.ErrAskInFlight, so answers always land in request order.
type QAService interface {
	// Restore loads the persisted transcript. Call once at startup.
	Restore(ctx context.Context) error

	// Ask appends the question entry immediately, then either the answer
	// entry or the fallback entry. The returned message is the appended
	// answer-or-fallback; err is non-nil when the backend failed, so the
	// caller can surface a notification alongside the fallback.
	Ask(ctx context.Context, question string) (models.Message, error)

	History() []models.Message

	// ClearHistory empties the transcript and removes its persisted copy.
	// Idempotent.
	ClearHistory(ctx context.Context) error
}

type qaService struct {
	client api.Client
	store  localstore.Store
	log    logging.Logger

	mu         sync.Mutex
	busy       bool
	transcript []models.Message
}

func NewQAService(client api.Client, store localstore.Store, log logging.Logger) QAService {
	return &qaService{client: client, store: store, log: log}
}

func (s *qaService) Restore(ctx context.Context) error {
	data, err := s.store.Get(ctx, common.StoreKeyQAHistory)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.transcript); err != nil {
		s.log.Warn(ctx, "discarding corrupt transcript", "err", err)
		s.transcript = nil
	}
	return nil
}

func (s *qaService) Ask(ctx context.Context, question string) (models.Message, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return models.Message{}, common.ErrAskInFlight
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	// Optimistic echo: the question joins the transcript before the
	// request resolves.
	s.append(ctx, models.Message{
		ID:        uuid.NewString(),
		Kind:      models.KindQuestion,
		Text:      question,
		CreatedAt: time.Now(),
	})

	answer, err := s.client.Ask(ctx, question)

	msg := models.Message{
		ID:        uuid.NewString(),
		Kind:      models.KindAnswer,
		CreatedAt: time.Now(),
	}
	if err != nil {
		msg.Text = FallbackAnswer
		s.append(ctx, msg)
		return msg, fmt.Errorf("ask error: %w", err)
	}

	msg.Text = answer.Answer
	msg.Sources = answer.Sources
	s.append(ctx, msg)
	return msg, nil
}

// append adds one entry and persists the whole transcript. Persist
// failures are logged, not surfaced: the in-memory transcript remains the
// source of truth for this run.
func (s *qaService) append(ctx context.Context, m models.Message) {
	s.mu.Lock()
	s.transcript = append(s.transcript, m)
	data, err := json.Marshal(s.transcript)
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "failed to encode transcript", "err", err)
		return
	}
	if err := s.store.Set(ctx, common.StoreKeyQAHistory, data); err != nil {
		s.log.Warn(ctx, "failed to persist transcript", "err", err)
	}
}

func (s *qaService) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *qaService) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	s.transcript = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, common.StoreKeyQAHistory); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}
