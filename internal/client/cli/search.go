package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/pages"
	"github.com/learnlink/learnlink/internal/client/prefs"
)

var errUsage = errors.New("usage")

func usage(msg string) error {
	return &pages.Failure{Msg: "Usage: " + msg, Err: errUsage}
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("search <query>")
	}
	a.enter(pages.RouteSearch)

	if err := a.search.Search(ctx, strings.Join(args, " ")); err != nil {
		return err
	}
	printlnFn(a.render.Results(a.search.Results().Data))
	return nil
}

// Live feeds each typed line to the debounced live search until an empty
// line. Results are printed as they arrive.
func (a *App) Live(ctx context.Context, _ []string) error {
	a.enter(pages.RouteSearch)
	printlnFn(a.render.Muted("Live search: type to search, empty line to stop."))

	for {
		line, err := a.reader.ReadString('\n')
		q := strings.TrimSpace(line)
		if q == "" {
			a.search.StopLive()
			return nil
		}
		a.search.Type(ctx, q, func(err error) {
			if err != nil {
				printlnFn(pages.Message(err))
				return
			}
			printlnFn(a.render.Title("Results for " + q))
			printlnFn(a.render.Results(a.search.Results().Data))
		})
		if err != nil {
			a.search.StopLive()
			return nil
		}
	}
}

func (a *App) Results(_ context.Context, args []string) error {
	if len(args) > 0 {
		printlnFn(a.render.Results(a.search.Filter(args[0])))
		return nil
	}
	v := a.search.Results()
	if v.Err != "" {
		printlnFn(a.render.Error(v.Err))
		return nil
	}
	printlnFn(a.render.Results(v.Data))
	return nil
}

// Open shows result n of the last search, or recommendation n for "r<n>".
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("open <n> | open r<n>")
	}
	arg := strings.ToLower(args[0])

	var (
		res client.SearchResult
		ok  bool
	)
	if rest, isRec := strings.CutPrefix(arg, "r"); isRec {
		n, err := strconv.Atoi(rest)
		recs := a.search.Recs().Data
		if err == nil && n >= 1 && n <= len(recs) {
			res, ok = recs[n-1], true
		}
	} else if n, err := strconv.Atoi(arg); err == nil {
		res, ok = a.search.Result(n - 1)
	}
	if !ok {
		return &pages.Failure{Msg: "No such result: " + args[0]}
	}

	if err := a.result.Open(ctx, res); err != nil {
		return err
	}
	return a.Detail(ctx, nil)
}

func (a *App) Recs(ctx context.Context, _ []string) error {
	a.enter(pages.RouteSearch)
	if err := a.search.Recommendations(ctx); err != nil {
		return err
	}
	printlnFn(a.render.Title("Recommended for you"))
	printlnFn(a.render.Results(a.search.Recs().Data))
	return nil
}

// AI toggles AI mode, or sets it with on/off, and saves the preference.
func (a *App) AI(_ context.Context, args []string) error {
	p := a.search.Prefs()
	switch {
	case len(args) == 0:
		p.AIMode = !p.AIMode
	case args[0] == "on":
		p.AIMode = true
	case args[0] == "off":
		p.AIMode = false
	default:
		return usage("ai [on|off]")
	}
	a.savePrefs(p)
	state := "off"
	if p.AIMode {
		state = "on"
	}
	printlnFn("AI mode " + state + ".")
	return nil
}

func (a *App) Platforms(_ context.Context, args []string) error {
	p := a.search.Prefs()
	if len(args) == 0 {
		printlnFn("Platforms: " + strings.Join(p.Platforms, ", "))
		return nil
	}
	p.Platforms = strings.Split(strings.Join(args, ","), ",")
	a.savePrefs(p)
	printlnFn("Platforms: " + strings.Join(a.search.Prefs().Platforms, ", "))
	return nil
}

func (a *App) MaxResults(_ context.Context, args []string) error {
	p := a.search.Prefs()
	if len(args) == 0 {
		printlnFn("Max results: " + strconv.Itoa(p.MaxResults))
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return usage("max <positive number>")
	}
	p.MaxResults = n
	a.savePrefs(p)
	printlnFn("Max results: " + strconv.Itoa(n))
	return nil
}

// savePrefs applies p to the search page and writes it to the prefs file.
// A failed write is logged; the change still applies to this run.
func (a *App) savePrefs(p prefs.Prefs) {
	p = p.Normalized()
	if err := prefs.Save(a.config.PrefsPath, p); err != nil {
		a.log.Warn(context.Background(), "preferences not saved", "error", err)
	}
	a.search.SetPrefs(p)
}
