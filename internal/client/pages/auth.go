package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
	"github.com/learnlink/learnlink/internal/logging"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// AuthPage covers /login and /register. It is the only unguarded page.
type AuthPage struct {
	api     client.API
	session *session.Session
	nav     Navigator
	log     logging.Logger
}

func NewAuthPage(api client.API, s *session.Session, nav Navigator, log logging.Logger) *AuthPage {
	return &AuthPage{api: api, session: s, nav: nav, log: log.With("page", "auth")}
}

// Mount sends an already logged in user on to /search and reports whether it did.
func (p *AuthPage) Mount(ctx context.Context) bool {
	if p.session.IsAuthenticated(ctx) {
		p.nav.Replace(RouteSearch)
		return true
	}
	return false
}

func (p *AuthPage) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return invalid("Please enter your email and password.")
	}

	res, err := p.api.Login(ctx, client.LoginRequest{Username: email, Password: password})
	if err != nil {
		p.log.Info(ctx, "login failed", "email", email, "error", err)
		return authFailure(err, "Invalid credentials")
	}
	if err := p.session.SetToken(ctx, res.Token); err != nil {
		return &Failure{Msg: msgSomethingWrong, Err: err}
	}
	if !p.session.IsAuthenticated(ctx) {
		return invalid("Login returned an unusable session. Please try again.")
	}

	p.log.Info(ctx, "logged in", "email", email)
	p.nav.Push(RouteSearch)
	return nil
}

// Register stores the issued token and continues to /login.
func (p *AuthPage) Register(ctx context.Context, email, name, password string) error {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return invalid("Please fill all fields.")
	}

	res, err := p.api.Register(ctx, client.RegisterRequest{Email: email, Name: name, Password: password})
	if err != nil {
		p.log.Info(ctx, "registration failed", "email", email, "error", err)
		return authFailure(err, "Signup failed. Please try again.")
	}
	if err := p.session.SetToken(ctx, res.Token); err != nil {
		return &Failure{Msg: msgSomethingWrong, Err: err}
	}

	p.nav.Push(RouteLogin)
	return nil
}

func (p *AuthPage) Logout(ctx context.Context) error {
	if err := p.session.ClearToken(ctx); err != nil {
		return &Failure{Msg: msgSomethingWrong, Err: err}
	}
	p.nav.Replace(RouteLogin)
	return nil
}

func authFailure(err error, rejected string) error {
	var se *client.StatusError
	if errors.As(err, &se) {
		return &Failure{Msg: detailOr(err, rejected), Err: err}
	}
	if errors.Is(err, client.ErrTimeout) {
		return &Failure{Msg: msgTimeout, Err: err}
	}
	return &Failure{Msg: msgSomethingWrong, Err: err}
}
