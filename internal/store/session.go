// Package store holds the client-side aggregates and the operations
// that transition them: session, account read model, and transaction
// read model. Each aggregate is mutated only by its own store.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bankcli/internal/domain"
	"bankcli/internal/gateway"
	"bankcli/internal/tokenstore"
)

// SessionStore owns the authentication aggregate and the bearer
// token. It is the only writer of the token: every change is mirrored
// into the gateway and the durable token store.
type SessionStore struct {
	mu      sync.Mutex
	gateway *gateway.Client
	tokens  tokenstore.Store

	session domain.Session

	// epoch invalidates in-flight logins: Logout bumps it, and a
	// login resolving against an older epoch discards its result.
	epoch uint64
}

func NewSessionStore(gw *gateway.Client, tokens tokenstore.Store) *SessionStore {
	s := &SessionStore{
		gateway: gw,
		tokens:  tokens,
		session: domain.Session{Status: domain.OpIdle},
	}
	gw.OnAuthRejected(s.forceLogout)
	return s
}

func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) error {
	epoch := s.begin()
	resp, err := s.gateway.Login(ctx, creds)
	return s.finishAuth(epoch, resp, err, "Login failed")
}

// Register has the same contract as Login against the signup
// endpoint. Password-confirmation matching is the caller's
// precondition, not session state.
func (s *SessionStore) Register(ctx context.Context, reg domain.Registration) error {
	epoch := s.begin()
	resp, err := s.gateway.Register(ctx, reg)
	return s.finishAuth(epoch, resp, err, "Registration failed")
}

func (s *SessionStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Status = domain.OpPending
	s.session.Error = ""
	return s.epoch
}

func (s *SessionStore) finishAuth(epoch uint64, resp domain.AuthResponse, err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		// Logged out while the request was in flight; the result no
		// longer has an owner.
		return nil
	}
	if err != nil {
		s.session.Status = domain.OpRejected
		s.session.Error = gateway.Message(err, fallback)
		s.session.IsAuthenticated = false
		return err
	}

	s.session = domain.Session{
		IsAuthenticated: true,
		User: &domain.UserProfile{
			Username: resp.Username,
			Email:    resp.Email,
			FullName: resp.FullName,
		},
		Token:  resp.Token,
		Status: domain.OpFulfilled,
	}
	s.gateway.SetToken(resp.Token)
	if saveErr := s.tokens.Save(resp.Token); saveErr != nil {
		log.Printf("failed to persist token: %v", saveErr)
	}
	return nil
}

// Logout clears the session immediately, regardless of any in-flight
// request. Idempotent.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.epoch++
	s.session = domain.Session{Status: domain.OpIdle}
	s.mu.Unlock()

	s.gateway.ClearToken()
	if err := s.tokens.Clear(); err != nil {
		log.Printf("failed to clear persisted token: %v", err)
	}
}

// forceLogout is the gateway's authentication-rejected signal. It
// runs before the triggering call returns, so no later request goes
// out with the stale token.
func (s *SessionStore) forceLogout() {
	s.mu.Lock()
	s.epoch++
	s.session = domain.Session{
		Status: domain.OpRejected,
		Error:  "Your session has expired. Please sign in again.",
	}
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		log.Printf("failed to clear persisted token: %v", err)
	}
}

func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Error = ""
}

// Restore rebuilds the session from the persisted bearer token. The
// token's JWT claims are read without signature verification (only
// the backend can verify) to recover the identity snapshot and check
// expiry; a token that cannot yield both is discarded so the session
// never holds a token without a resolved identity.
func (s *SessionStore) Restore() error {
	token, err := s.tokens.Load()
	if errors.Is(err, tokenstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	user, ok := profileFromToken(token)
	if !ok {
		if err := s.tokens.Clear(); err != nil {
			log.Printf("failed to clear persisted token: %v", err)
		}
		return nil
	}

	s.mu.Lock()
	s.session = domain.Session{
		IsAuthenticated: true,
		User:            &user,
		Token:           token,
		Status:          domain.OpFulfilled,
	}
	s.mu.Unlock()
	s.gateway.SetToken(token)
	return nil
}

func profileFromToken(token string) (domain.UserProfile, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.UserProfile{}, false
	}
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil || exp.Before(nowUTC()) {
		return domain.UserProfile{}, false
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		username, _ = claims["username"].(string)
	}
	if username == "" {
		return domain.UserProfile{}, false
	}
	email, _ := claims["email"].(string)
	fullName, _ := claims["name"].(string)
	return domain.UserProfile{Username: username, Email: email, FullName: fullName}, true
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Session returns a copy of the aggregate for rendering.
func (s *SessionStore) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.session
	if s.session.User != nil {
		user := *s.session.User
		out.User = &user
	}
	return out
}
