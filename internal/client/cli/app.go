package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/config"
	"github.com/learnlink/learnlink/internal/client/pages"
	"github.com/learnlink/learnlink/internal/client/prefs"
	"github.com/learnlink/learnlink/internal/client/render"
	"github.com/learnlink/learnlink/internal/client/repositories/metadata"
	"github.com/learnlink/learnlink/internal/client/repositories/progress"
	"github.com/learnlink/learnlink/internal/client/session"
	"github.com/learnlink/learnlink/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const (
	// pingTimeout bounds one connectivity probe.
	pingTimeout = 3 * time.Second
	// defaultCheckInterval is used when the configured interval is not positive.
	defaultCheckInterval = 3 * time.Second
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session *session.Session
	api     client.API
	render  *render.Renderer

	auth    *pages.AuthPage
	search  *pages.SearchPage
	result  *pages.ResultPage
	profile *pages.ProfilePage
	roadmap *pages.RoadmapPage
	pdf     *pages.PDFPage
	voice   *pages.VoicePage

	reader *bufio.Reader
	out    io.Writer

	mu    sync.Mutex
	Mode  Mode
	route pages.Route
	// left are the routes navigated away from since the last command.
	left []pages.Route
}

// NewApp wires the whole client: local database, session, HTTP client and
// pages. Everything is built here once and handed down.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	var store session.TokenStore = session.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	if c.Ephemeral {
		store = session.NewMemoryTokenStore()
	}

	p, err := prefs.Load(c.PrefsPath)
	if err != nil {
		log.Warn(ctx, "preferences not loaded, using defaults", "error", err)
	}

	app, err := newApp(c, log, db, store, p, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, store session.TokenStore, p prefs.Prefs, in io.Reader, out io.Writer) (*App, error) {
	s := session.New(store, log)

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:           c.ServerURL,
		RequestTimeout:    c.RequestTimeout,
		GenerationTimeout: c.GenerationTimeout,
		RequestsPerSecond: c.RequestsPerSecond,
		Tokens:            s,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	a := &App{
		config:  c,
		log:     log,
		db:      db,
		session: s,
		api:     api,
		render:  render.New(p.Plain),
		reader:  bufio.NewReader(in),
		out:     out,
		Mode:    ModeOffline,
		route:   pages.RouteLogin,
	}

	guard := pages.NewGuard(s, a, log)
	a.auth = pages.NewAuthPage(api, s, a, log)
	a.search = pages.NewSearchPage(api, guard, p, c.SearchDebounce)
	a.result = pages.NewResultPage(api, guard, a)
	a.profile = pages.NewProfilePage(api, guard, c.SiteURL)
	a.roadmap = pages.NewRoadmapPage(api, guard, progress.NewSQLiteRepository(db))
	a.pdf = pages.NewPDFPage(api, guard)
	a.voice = pages.NewVoicePage(api, guard, nil, log)
	return a, nil
}

// Close releases the local database.
func (a *App) Close() error {
	a.voice.Stop()
	a.search.StopLive()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

// Run starts the connectivity watcher and the REPL, returning when the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.Close() }()
	a.Root(ctx)
}

// StartOnlineStatusWatcher pings the backend every interval and flips Mode
// accordingly. It blocks until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.api.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
