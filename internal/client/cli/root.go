package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	user := ""
	if u := a.session.GetUser(context.Background()); u != nil {
		user = u.DisplayName()
	}
	return fmt.Sprintf("%s %s", a.render.Status(a.mode() == ModeOnline, user), a.currentRoute())
}

// Root greets the user, starts the connectivity watcher and runs the REPL
// until the user exits.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn(a.render.Title("Welcome to LearnLink (type 'help' for commands)"))

	if a.auth.Mount(ctx) {
		a.settle()
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
