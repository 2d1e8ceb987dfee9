// Package services contains the application services of the kbcli client:
// the session store, the document collection cache, and the search and Q&A
// sessions. Each service is an explicit object injected where needed; there
// is no ambient session singleton.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/kbcli/internal/client/api"
	"github.com/dmitrijs2005/kbcli/internal/client/localstore"
	"github.com/dmitrijs2005/kbcli/internal/client/models"
	"github.com/dmitrijs2005/kbcli/internal/common"
	"github.com/dmitrijs2005/kbcli/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// SessionService owns the authentication session lifecycle.
//
// Contract:
//   - Bootstrap: restore a persisted session once at startup; corrupt or
//     expired state is cleared, never reported as an error.
//   - Login: authenticate and persist token+user; on failure the session
//     (memory and store) is untouched.
//   - Register: create an account; does not authenticate.
//   - Logout: clear persisted and in-memory session unconditionally.
//
// Invariant: after any operation the persisted token/user pair and the
// in-memory session agree — never one without the other.
type SessionService interface {
	Bootstrap(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
}

type sessionService struct {
	client   api.Client
	store    localstore.Store
	log      logging.Logger
	validate *validator.Validate

	user  *models.User
	token string
}

// NewSessionService constructs a SessionService bound to the given API
// client and local store.
func NewSessionService(client api.Client, store localstore.Store, log logging.Logger) SessionService {
	return &sessionService{
		client:   client,
		store:    store,
		log:      log,
		validate: validator.New(),
	}
}

// Bootstrap reads the persisted token and user. If either is missing, the
// user JSON does not parse, or the token is a JWT whose exp claim already
// passed, both keys are removed and the session starts unauthenticated.
// Runs once at process start, before any authenticated command.
func (s *sessionService) Bootstrap(ctx context.Context) error {
	token, err := s.store.Get(ctx, common.StoreKeyToken)
	if err != nil {
		return fmt.Errorf("failed to read persisted token: %w", err)
	}
	userData, err := s.store.Get(ctx, common.StoreKeyUser)
	if err != nil {
		return fmt.Errorf("failed to read persisted user: %w", err)
	}

	if len(token) == 0 || len(userData) == 0 {
		return s.clearPersisted(ctx)
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		// Corrupt persisted state is treated as "never logged in".
		return s.clearPersisted(ctx)
	}

	if tokenExpired(string(token), time.Now()) {
		return s.clearPersisted(ctx)
	}

	s.token = string(token)
	s.user = &user
	s.client.SetToken(s.token)
	return nil
}

// tokenExpired reports whether token is a decodable JWT with an exp claim
// in the past. The token is otherwise opaque to the client: signature
// verification is the backend's job, and a token that does not parse as a
// JWT is kept as-is.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (s *sessionService) Login(ctx context.Context, email, password string) error {
	creds := api.Credentials{Email: email, Password: password}
	if err := s.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	userData, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	// Token and user are persisted together so a crash between writes
	// cannot leave one without the other.
	err = s.store.SetMany(ctx, map[string][]byte{
		common.StoreKeyToken: []byte(resp.Token),
		common.StoreKeyUser:  userData,
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.token = resp.Token
	s.user = &resp.User
	s.client.SetToken(resp.Token)
	return nil
}

func (s *sessionService) Register(ctx context.Context, email, password string) error {
	creds := api.Credentials{Email: email, Password: password}
	if err := s.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if err := s.client.Register(ctx, creds); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Logout drops the session unconditionally. A failure to remove the
// persisted pair is logged, not returned: the user asked to be logged out
// and is, and a stale persisted token is re-checked at the next bootstrap.
func (s *sessionService) Logout(ctx context.Context) error {
	s.token = ""
	s.user = nil
	s.client.ClearToken()
	if err := s.clearPersisted(ctx); err != nil {
		s.log.Warn(ctx, "failed to remove persisted session", "err", err)
	}
	return nil
}

func (s *sessionService) clearPersisted(ctx context.Context) error {
	return s.store.Delete(ctx, common.StoreKeyToken, common.StoreKeyUser)
}

func (s *sessionService) CurrentUser() *models.User {
	return s.user
}

func (s *sessionService) IsAuthenticated() bool {
	return s.user != nil && s.token != ""
}
