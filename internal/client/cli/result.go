package cli

import (
	"context"
	"strconv"
)

// Detail prints the open result with its description and related topics.
func (a *App) Detail(_ context.Context, _ []string) error {
	cur := a.result.Current()
	if cur.Title == "" && cur.URL == "" {
		printlnFn("No result open. Use 'open <n>' after a search.")
		return nil
	}
	printlnFn(a.render.ResultDetail(cur, a.result.Description().Data, a.result.Topics().Data))
	return nil
}

// Explore opens related topic n of the current result.
func (a *App) Explore(ctx context.Context, args []string) error {
	topics := a.result.Topics().Data
	if len(args) != 1 {
		return usage("explore <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(topics) {
		return usage("explore <n> with n between 1 and " + strconv.Itoa(len(topics)))
	}
	if err := a.result.Explore(ctx, topics[n-1]); err != nil {
		return err
	}
	return a.Detail(ctx, nil)
}

func (a *App) Bookmark(ctx context.Context, _ []string) error {
	msg, err := a.result.Bookmark(ctx)
	if err != nil {
		return err
	}
	printlnFn(a.render.Success(msg))
	return nil
}
