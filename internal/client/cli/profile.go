package cli

import (
	"context"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/pages"
)

// Profile loads and prints the user's profile.
func (a *App) Profile(ctx context.Context, _ []string) error {
	a.enter(pages.RoutePersonal)
	if err := a.profile.Load(ctx); err != nil {
		return err
	}
	printlnFn(a.render.Profile(a.profile.View().Data))
	return nil
}

// ask collects one answer per label, stopping at the first read error.
func (a *App) ask(labels ...string) ([]string, error) {
	out := make([]string, len(labels))
	for i, l := range labels {
		v, err := getSimpleText(a.reader, l, a.out)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ensureProfile loads the profile when the page has none yet.
func (a *App) ensureProfile(ctx context.Context) error {
	a.enter(pages.RoutePersonal)
	if a.profile.View().Ready() {
		return nil
	}
	return a.profile.Load(ctx)
}

func (a *App) AddEducation(ctx context.Context, _ []string) error {
	if err := a.ensureProfile(ctx); err != nil {
		return err
	}
	v, err := a.ask("University", "Degree", "Field", "Start year", "End year")
	if err != nil {
		return err
	}
	msg, err := a.profile.AddEducation(ctx, client.Education{
		University: v[0], Degree: v[1], Field: v[2],
		StartYear: client.FlexString(v[3]), EndYear: client.FlexString(v[4]),
	})
	return a.done(msg, err)
}

func (a *App) AddWork(ctx context.Context, _ []string) error {
	if err := a.ensureProfile(ctx); err != nil {
		return err
	}
	v, err := a.ask("Company", "Role", "Field", "Start year", "End year")
	if err != nil {
		return err
	}
	msg, err := a.profile.AddWork(ctx, client.Work{
		Company: v[0], Role: v[1], Field: v[2],
		StartYear: client.FlexString(v[3]), EndYear: client.FlexString(v[4]),
	})
	return a.done(msg, err)
}

func (a *App) AddProject(ctx context.Context, _ []string) error {
	if err := a.ensureProfile(ctx); err != nil {
		return err
	}
	v, err := a.ask("Project name", "Description", "Technologies", "Start year", "End year")
	if err != nil {
		return err
	}
	msg, err := a.profile.AddProject(ctx, client.Project{
		Name: v[0], Description: v[1], Technologies: v[2],
		StartYear: client.FlexString(v[3]), EndYear: client.FlexString(v[4]),
	})
	return a.done(msg, err)
}

func (a *App) Share(ctx context.Context, _ []string) error {
	if err := a.ensureProfile(ctx); err != nil {
		return err
	}
	link, err := a.profile.ShareLink()
	if err != nil {
		return err
	}
	printlnFn(link)
	return nil
}

func (a *App) done(msg string, err error) error {
	if err != nil {
		return err
	}
	printlnFn(a.render.Success(msg))
	return nil
}
