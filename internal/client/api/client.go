// Package api is the HTTP adapter for the knowledge-base backend. It owns
// request building (JSON body, bearer token), response decoding, and the
// mapping of failures onto ErrUnavailable / StatusError. It performs no
// retries and never reacts to a 401 on its own.
package api

import (
	"context"

	"github.com/dmitrijs2005/kbcli/internal/client/models"
)

// Credentials is the login/register request body. Validation tags are
// checked by the services layer before any request is made.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the success body of POST /api/auth/login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// DocumentPayload is the create/update request body. For updates the
// backend treats absent fields as "keep"; the client always sends all
// three since the edit flow commits title, content, and tags together.
type DocumentPayload struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// Answer is the success body of POST /api/qa.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// Client is the remote surface of the backend as the rest of the client
// sees it. Implementations must honor context cancellation on every call.
type Client interface {
	// SetToken installs the bearer token attached to subsequent requests;
	// ClearToken removes it.
	SetToken(token string)
	ClearToken()

	Login(ctx context.Context, creds Credentials) (*LoginResponse, error)
	Register(ctx context.Context, creds Credentials) error

	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	CreateDocument(ctx context.Context, p DocumentPayload) (*models.Document, error)
	UpdateDocument(ctx context.Context, id string, p DocumentPayload) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	SummarizeDocument(ctx context.Context, id string) (*models.Document, error)
	GenerateTags(ctx context.Context, id string) (*models.Document, error)

	Search(ctx context.Context, query string, semantic bool) ([]models.SearchResult, error)
	Ask(ctx context.Context, question string) (*Answer, error)
}
