package pages

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/prefs"
	"github.com/learnlink/learnlink/internal/client/session"
)

const DefaultSearchDebounce = 500 * time.Millisecond

// SearchPage is /search: plain and AI search, live search and recommendations.
type SearchPage struct {
	api   client.API
	guard *Guard
	live  *Debouncer

	mu      sync.Mutex
	prefs   prefs.Prefs
	query   string
	results View[[]client.SearchResult]
	recs    View[[]client.SearchResult]
}

func NewSearchPage(api client.API, guard *Guard, p prefs.Prefs, debounce time.Duration) *SearchPage {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &SearchPage{api: api, guard: guard, prefs: p, live: NewDebouncer(debounce)}
}

func (p *SearchPage) Prefs() prefs.Prefs {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prefs
}

// SetPrefs applies new preferences to the following searches.
func (p *SearchPage) SetPrefs(pr prefs.Prefs) {
	p.mu.Lock()
	p.prefs = pr
	p.mu.Unlock()
}

// Search runs one search now. An empty query clears the results without
// calling the backend.
func (p *SearchPage) Search(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.query = q
	if q == "" {
		p.results.show(nil)
		return nil
	}

	req := client.SearchRequest{Query: q, MaxResults: p.prefs.MaxResults, Platforms: p.prefs.Platforms}
	ai := p.prefs.AIMode
	return run(ctx, p.guard, &p.results, "Search failed. Please try again.",
		func(ctx context.Context, _ *session.User) ([]client.SearchResult, error) {
			res, err := p.api.Search(ctx, req, ai)
			if err != nil {
				return nil, err
			}
			return res.Results, nil
		})
}

// Type feeds the live search input. The search runs once the input has been
// quiet for the debounce delay, only when the value changed; done receives
// its outcome.
func (p *SearchPage) Type(ctx context.Context, query string, done func(error)) {
	q := strings.TrimSpace(query)
	if q == "" {
		p.live.Cancel("")
		p.mu.Lock()
		p.query = ""
		p.results.show(nil)
		p.mu.Unlock()
		if done != nil {
			done(nil)
		}
		return
	}
	p.live.Trigger(q, func() {
		err := p.Search(ctx, q)
		if done != nil {
			done(err)
		}
	})
}

// StopLive drops a pending live search.
func (p *SearchPage) StopLive() {
	p.live.Cancel("")
}

func (p *SearchPage) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *SearchPage) Results() View[[]client.SearchResult] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Filter returns the results of one platform; "" and "all" keep everything.
func (p *SearchPage) Filter(platform string) []client.SearchResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	platform = strings.ToLower(strings.TrimSpace(platform))
	out := make([]client.SearchResult, 0, len(p.results.Data))
	for _, r := range p.results.Data {
		if platform == "" || platform == "all" || strings.EqualFold(r.Platform, platform) {
			out = append(out, r)
		}
	}
	return out
}

// Result returns the i-th (0-based) result.
func (p *SearchPage) Result(i int) (client.SearchResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.results.Data) {
		return client.SearchResult{}, false
	}
	return p.results.Data[i], true
}

// Recommendations loads suggestions in the mode matching AI mode.
func (p *SearchPage) Recommendations(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	mode := p.prefs.RecommendationMode()
	return run(ctx, p.guard, &p.recs, "Failed to load recommendations.",
		func(ctx context.Context, _ *session.User) ([]client.SearchResult, error) {
			res, err := p.api.Recommendations(ctx, mode)
			if err != nil {
				return nil, err
			}
			return res.Results, nil
		})
}

func (p *SearchPage) Recs() View[[]client.SearchResult] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recs
}

func (p *SearchPage) Reset() {
	p.live.Cancel("")
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = ""
	p.results.Reset()
	p.recs.Reset()
}
