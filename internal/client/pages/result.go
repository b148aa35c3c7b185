package pages

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
)

var fallbackTopics = []string{
	"Advanced Concepts",
	"Beginner Guide",
	"Practical Examples",
	"Deep Dive",
	"Quick Tutorial",
	"Expert Tips",
}

const fallbackTopicCount = 4

// ResultPage is /search-results: one result with its AI description,
// related topics and bookmarking.
type ResultPage struct {
	api     client.API
	guard   *Guard
	nav     Navigator
	shuffle func([]string)

	current     client.SearchResult
	description View[string]
	topics      View[[]string]
}

func NewResultPage(api client.API, guard *Guard, nav Navigator) *ResultPage {
	return &ResultPage{
		api:   api,
		guard: guard,
		nav:   nav,
		shuffle: func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
	}
}

// Open shows r and loads its details.
func (p *ResultPage) Open(ctx context.Context, r client.SearchResult) error {
	p.nav.Push(RouteSearchResults)
	p.current = r
	return p.load(ctx)
}

func (p *ResultPage) Current() client.SearchResult { return p.current }

func (p *ResultPage) Description() View[string] { return p.description }

func (p *ResultPage) Topics() View[[]string] { return p.topics }

func (p *ResultPage) Reset() {
	p.current = client.SearchResult{}
	p.description.Reset()
	p.topics.Reset()
}

// load fetches the AI description, falling back to the original one, and
// the related topics, falling back to a static list.
func (p *ResultPage) load(ctx context.Context) error {
	r := p.current

	if r.Description == "" {
		p.description.show("")
	} else {
		err := run(ctx, p.guard, &p.description, "Failed to load description.",
			func(ctx context.Context, _ *session.User) (string, error) {
				res, err := p.api.AIDescription(ctx, client.AIDescriptionRequest{
					URL:                 r.URL,
					Platform:            r.Platform,
					OriginalDescription: r.Description,
					UserQuery:           r.Title,
				})
				if err != nil {
					return "", err
				}
				if res.DetailedDescription == "" {
					return r.Description, nil
				}
				return res.DetailedDescription, nil
			})
		if errors.Is(err, ErrRedirected) {
			return err
		}
		if err != nil {
			p.description.show(r.Description)
		}
	}

	if r.Title == "" {
		p.topics.show(nil)
		return nil
	}
	err := run(ctx, p.guard, &p.topics, "Failed to load related topics.",
		func(ctx context.Context, _ *session.User) ([]string, error) {
			res, err := p.api.RelatedTopics(ctx, r.Title)
			if err != nil {
				return nil, err
			}
			return res.Topics, nil
		})
	if errors.Is(err, ErrRedirected) {
		return err
	}
	if err != nil {
		p.topics.show(p.fallbackTopics())
	}
	return nil
}

func (p *ResultPage) fallbackTopics() []string {
	topics := append([]string(nil), fallbackTopics...)
	p.shuffle(topics)
	return topics[:fallbackTopicCount]
}

// Explore replaces the current result with a generated one about topic.
func (p *ResultPage) Explore(ctx context.Context, topic string) error {
	if topic == "" {
		return invalid("Pick a topic first.")
	}
	var next client.SearchResult
	err := act(ctx, p.guard, "Error loading topic details. Please try again.",
		func(ctx context.Context, _ *session.User) error {
			res, err := p.api.TopicDescription(ctx, topic)
			if err != nil {
				return err
			}
			next = client.SearchResult{Title: topic, Description: res.DetailedDescription, Platform: "ai"}
			return nil
		})
	if err != nil {
		return err
	}
	return p.Open(ctx, next)
}

// Bookmark adds the current URL to the user's profile and returns the
// message to show.
func (p *ResultPage) Bookmark(ctx context.Context) (string, error) {
	url := p.current.URL
	if url == "" {
		return "", invalid("Nothing to bookmark.")
	}

	msg := ""
	err := act(ctx, p.guard, "Error bookmarking.", func(ctx context.Context, u *session.User) error {
		profile, err := p.api.Profile(ctx, u.Email)
		if err != nil {
			return err
		}
		if profile.HasBookmark(url) {
			msg = "Already bookmarked!"
			return nil
		}
		profile.Bookmarks = append(profile.Bookmarks, url)
		if err := p.api.SaveProfile(ctx, profile); err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return err
			}
			return failure(err, "Failed to bookmark.")
		}
		msg = "Bookmarked successfully!"
		return nil
	})
	return msg, err
}
