package pages

import (
	"context"
	"errors"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
	"github.com/learnlink/learnlink/internal/logging"
)

// ErrRedirected means the operation ended by sending the user to /login.
var ErrRedirected = errors.New("redirected to login")

const (
	msgTimeout     = "Request timed out. Please try again."
	msgUnavailable = "Server unavailable. Please try again later."
)

// Failure is an error with the message the user should see.
type Failure struct {
	Msg string
	Err error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Msg + ": " + f.Err.Error()
	}
	return f.Msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func invalid(msg string) error {
	return &Failure{Msg: msg}
}

// failure picks the message for err: timeouts and outages get their own,
// anything else gets msg.
func failure(err error, msg string) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, client.ErrTimeout):
		msg = msgTimeout
	case errors.Is(err, client.ErrUnavailable):
		msg = msgUnavailable
	}
	return &Failure{Msg: msg, Err: err}
}

// detailOr prefers the backend's own explanation.
func detailOr(err error, fallback string) string {
	if d, ok := client.Detail(err); ok {
		return d
	}
	return fallback
}

// Message renders any page error for the user.
func Message(err error) string {
	var f *Failure
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRedirected):
		return "Please log in to continue."
	case errors.As(err, &f):
		return f.Msg
	default:
		return err.Error()
	}
}

// Guard is the session check shared by all guarded pages.
type Guard struct {
	session *session.Session
	nav     Navigator
	log     logging.Logger
}

func NewGuard(s *session.Session, nav Navigator, log logging.Logger) *Guard {
	return &Guard{session: s, nav: nav, log: log.With("component", "guard")}
}

func (g *Guard) toLogin(ctx context.Context, clear bool) error {
	if clear {
		if err := g.session.ClearToken(ctx); err != nil {
			g.log.Warn(ctx, "token clear failed", "error", err)
		}
	}
	g.nav.Replace(RouteLogin)
	return ErrRedirected
}

// run drives v through the lifecycle around one fetch. failMsg is shown for
// errors other than timeouts, outages and 401s.
func run[T any](ctx context.Context, g *Guard, v *View[T], failMsg string, fetch func(ctx context.Context, u *session.User) (T, error)) error {
	*v = View[T]{Phase: CheckingSession}

	u := g.session.GetUser(ctx)
	if u == nil {
		v.Phase = Redirecting
		return g.toLogin(ctx, false)
	}

	v.Phase = Fetching
	data, err := fetch(ctx, u)
	switch {
	case err == nil:
		v.show(data)
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		g.log.Info(ctx, "session rejected by backend", "email", u.Email)
		*v = View[T]{Phase: Redirecting}
		return g.toLogin(ctx, true)
	default:
		f := failure(err, failMsg)
		g.log.Warn(ctx, "page fetch failed", "error", err)
		v.fail(f.Msg)
		return f
	}
}

// act is run for operations whose result the caller keeps itself.
func act(ctx context.Context, g *Guard, failMsg string, fn func(ctx context.Context, u *session.User) error) error {
	var v View[struct{}]
	return run(ctx, g, &v, failMsg, func(ctx context.Context, u *session.User) (struct{}, error) {
		return struct{}{}, fn(ctx, u)
	})
}
