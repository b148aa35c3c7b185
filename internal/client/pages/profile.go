package pages

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
)

const msgFillAll = "Please fill all fields."

// ProfilePage is /personal.
type ProfilePage struct {
	api     client.API
	guard   *Guard
	siteURL string

	profile View[*client.Profile]
}

// NewProfilePage takes the public site address used for share links.
func NewProfilePage(api client.API, guard *Guard, siteURL string) *ProfilePage {
	return &ProfilePage{api: api, guard: guard, siteURL: strings.TrimRight(siteURL, "/")}
}

func (p *ProfilePage) Load(ctx context.Context) error {
	return run(ctx, p.guard, &p.profile, "Failed to load profile. Please try again later.",
		func(ctx context.Context, u *session.User) (*client.Profile, error) {
			return p.api.Profile(ctx, u.Email)
		})
}

func (p *ProfilePage) View() View[*client.Profile] { return p.profile }

func (p *ProfilePage) Reset() { p.profile.Reset() }

func (p *ProfilePage) AddEducation(ctx context.Context, e client.Education) (string, error) {
	if !filled(e.University, e.Degree, e.Field, string(e.StartYear), string(e.EndYear)) {
		return "", invalid(msgFillAll)
	}
	return p.save(ctx, "Education added successfully!", "Failed to add education.", func(pr *client.Profile) {
		pr.Education = append(pr.Education, e)
	})
}

func (p *ProfilePage) AddWork(ctx context.Context, w client.Work) (string, error) {
	if !filled(w.Company, w.Role, w.Field, string(w.StartYear), string(w.EndYear)) {
		return "", invalid(msgFillAll)
	}
	return p.save(ctx, "Work experience added successfully!", "Failed to add work experience.", func(pr *client.Profile) {
		pr.Work = append(pr.Work, w)
	})
}

func (p *ProfilePage) AddProject(ctx context.Context, pj client.Project) (string, error) {
	if !filled(pj.Name, pj.Description, pj.Technologies, string(pj.StartYear), string(pj.EndYear)) {
		return "", invalid(msgFillAll)
	}
	return p.save(ctx, "Project added successfully!", "Failed to add project.", func(pr *client.Profile) {
		pr.Projects = append(pr.Projects, pj)
	})
}

// save applies mutate to a copy of the loaded profile and keeps it only
// once the backend accepted it.
func (p *ProfilePage) save(ctx context.Context, okMsg, failMsg string, mutate func(*client.Profile)) (string, error) {
	if !p.profile.Ready() || p.profile.Data == nil {
		return "", invalid("Load your profile first.")
	}

	updated := cloneProfile(p.profile.Data)
	mutate(updated)

	err := act(ctx, p.guard, failMsg, func(ctx context.Context, _ *session.User) error {
		return p.api.SaveProfile(ctx, updated)
	})
	if errors.Is(err, ErrRedirected) {
		p.profile.Reset()
		return "", err
	}
	if err != nil {
		return "", err
	}
	p.profile.show(updated)
	return okMsg, nil
}

// ShareLink is the public address of the loaded profile.
func (p *ProfilePage) ShareLink() (string, error) {
	if !p.profile.Ready() || p.profile.Data == nil || p.profile.Data.Email == "" {
		return "", invalid("Load your profile first.")
	}
	return p.siteURL + "/profile?email=" + url.QueryEscape(p.profile.Data.Email), nil
}

func filled(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

func cloneProfile(p *client.Profile) *client.Profile {
	c := *p
	c.Education = append([]client.Education(nil), p.Education...)
	c.Work = append([]client.Work(nil), p.Work...)
	c.Projects = append([]client.Project(nil), p.Projects...)
	c.Bookmarks = append([]string(nil), p.Bookmarks...)
	return &c
}
