package cli

import (
	"context"
	"strings"

	"github.com/learnlink/learnlink/internal/client/pages"
	"github.com/learnlink/learnlink/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// Register prompts for email, name and password and creates the account.
// On success the app moves on to /login.
func (a *App) Register(ctx context.Context, _ []string) error {
	a.enter(pages.RouteRegister)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, email, name, string(password)); err != nil {
		return err
	}
	printlnFn(a.render.Success("Account created. Please log in."))
	return nil
}

// Login prompts for credentials unless a valid session exists already.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.auth.Mount(ctx) {
		printlnFn("Already logged in.")
		return nil
	}
	a.enter(pages.RouteLogin)

	email := strings.Join(args, " ")
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		return err
	}
	if u := a.session.GetUser(ctx); u != nil {
		printlnFn(a.render.Success("Welcome, " + u.DisplayName() + "!"))
	}
	return nil
}

// Logout forgets the session token.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context, _ []string) error {
	u := a.session.GetUser(ctx)
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	line := u.Email
	if u.Name != "" {
		line = u.Name + " <" + u.Email + ">"
	}
	if !u.ExpiresAt.IsZero() {
		line += a.render.Muted(" (session until " + u.ExpiresAt.Local().Format("2006-01-02 15:04") + ")")
	}
	printlnFn(line)
	return nil
}
