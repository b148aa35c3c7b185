package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/learnlink/learnlink/internal/logging"
)

// Claims is the part of the token payload the client looks at.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// User is derived from the token on every call and never stored.
type User struct {
	Email string
	Name  string
	// ExpiresAt is zero when the token carries no exp claim.
	ExpiresAt time.Time
}

// DisplayName prefers the name claim and falls back to the email's local part.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return u.Email
}

type Session struct {
	store  TokenStore
	log    logging.Logger
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Session)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(store TokenStore, log logging.Logger, opts ...Option) *Session {
	s := &Session{
		store:  store,
		log:    log.With("component", "session"),
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetUser returns the user of the stored token, or nil when there is no
// usable session. A malformed or expired token is cleared on the way out.
// Signatures are not checked: the backend validates every request anyway.
func (s *Session) GetUser(ctx context.Context) *User {
	token, err := s.store.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "token read failed", "error", err)
		return nil
	}
	if token == "" {
		return nil
	}

	claims, exp, err := s.decode(token)
	if err != nil {
		s.log.Info(ctx, "dropping malformed token", "error", err)
		s.clear(ctx)
		return nil
	}

	u := &User{Email: claims.Email, Name: claims.Name}
	if exp != nil {
		u.ExpiresAt = time.UnixMilli(int64(*exp * 1000))
		if *exp*1000 < float64(s.now().UnixMilli()) {
			s.log.Info(ctx, "dropping expired token", "email", claims.Email, "expired_at", u.ExpiresAt)
			s.clear(ctx)
			return nil
		}
	}

	return u
}

// decode reads the payload segment only, whatever the header says. exp is
// returned separately because NumericDate drops its fraction.
func (s *Session) decode(token string) (*Claims, *float64, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, nil, jwt.ErrTokenMalformed
	}
	seg, err := s.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", jwt.ErrTokenMalformed, err)
	}

	claims := &Claims{}
	if err := json.Unmarshal(seg, claims); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", jwt.ErrTokenMalformed, err)
	}
	var raw struct {
		Exp *float64 `json:"exp"`
	}
	if err := json.Unmarshal(seg, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", jwt.ErrTokenMalformed, err)
	}
	return claims, raw.Exp, nil
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.GetUser(ctx) != nil
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, token)
}

func (s *Session) ClearToken(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Token returns the raw stored token without inspecting it.
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.store.Get(ctx)
}

func (s *Session) clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "token clear failed", "error", err)
	}
}
