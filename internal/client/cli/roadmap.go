package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/pages"
)

// Categories lists roadmap domains, optionally of one category and
// filtered by a substring.
func (a *App) Categories(ctx context.Context, args []string) error {
	a.enter(pages.RouteRoadmap)
	if !a.roadmap.Categories().Ready() {
		if err := a.roadmap.LoadCategories(ctx); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		printlnFn(a.render.Categories(a.roadmap.Categories().Data))
		return nil
	}
	category := args[0]
	if category != pages.CategoryRoleBased && category != pages.CategorySkillBased {
		return usage("categories [role_based|skill_based] [filter]")
	}
	printlnFn(a.render.Title(category))
	printlnFn(a.render.Domains(a.roadmap.Domains(category, strings.Join(args[1:], " "))))
	return nil
}

// Generate asks for the roadmap parameters and generates it. The domain may
// be given as arguments.
func (a *App) Generate(ctx context.Context, args []string) error {
	a.enter(pages.RouteRoadmap)

	domain := strings.Join(args, " ")
	if domain == "" {
		var err error
		if domain, err = getSimpleText(a.reader, "Domain (e.g. Backend Developer)", a.out); err != nil {
			return err
		}
	}
	v, err := a.ask("Category [role_based|skill_based] (empty for role_based)", "Skill level [beginner|intermediate|advanced] (empty for beginner)")
	if err != nil {
		return err
	}
	prefsText, err := getMultiline(a.reader, "Custom preferences (optional)", a.out)
	if err != nil {
		return err
	}

	req := client.RoadmapRequest{Domain: domain, Category: v[0], SkillLevel: v[1]}
	if prefsText != "" {
		req.CustomPreferences = &prefsText
	}

	printlnFn(a.render.Muted("Generating roadmap, this can take a while..."))
	if err := a.roadmap.Generate(ctx, req); err != nil {
		return err
	}
	return a.Roadmap(ctx, nil)
}

func (a *App) Roadmap(_ context.Context, _ []string) error {
	marks, _, _ := a.roadmap.Progress()
	printlnFn(a.render.Roadmap(a.roadmap.Roadmap().Data, marks))
	return nil
}

// Done toggles step n, or topic m of step n given as "n.m".
func (a *App) Done(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("done <step>[.<topic>]")
	}
	stepArg, topicArg, hasTopic := strings.Cut(args[0], ".")
	step, err := strconv.Atoi(stepArg)
	if err != nil {
		return usage("done <step>[.<topic>]")
	}
	topic := 0
	if hasTopic {
		if topic, err = strconv.Atoi(topicArg); err != nil {
			return usage("done <step>[.<topic>]")
		}
	}

	marked, err := a.roadmap.Toggle(ctx, step-1, topic-1)
	if err != nil {
		return err
	}
	state := "Unmarked "
	if marked {
		state = "Completed "
	}
	_, done, total := a.roadmap.Progress()
	printlnFn(state + args[0] + ". " + a.render.Progress(done, total))
	return nil
}

func (a *App) Tracked(ctx context.Context, _ []string) error {
	tracked, err := a.roadmap.Tracked(ctx)
	if err != nil {
		return err
	}
	if len(tracked) == 0 {
		printlnFn("No saved progress.")
		return nil
	}
	lines := make([]string, len(tracked))
	for i, t := range tracked {
		lines[i] = fmt.Sprintf("%s (%d completed)", t.Domain, t.Completed)
	}
	printlnFn(a.render.Domains(lines))
	return nil
}

func (a *App) Quiz(ctx context.Context, _ []string) error {
	if err := a.roadmap.StartQuiz(ctx); err != nil {
		return err
	}
	printlnFn(a.render.Quiz(a.roadmap.Quiz().Data, a.roadmap.Answers()))
	return nil
}

// Answer records the option for a question. Options may be given as a
// letter or a number.
func (a *App) Answer(_ context.Context, args []string) error {
	if len(args) != 2 {
		return usage("answer <question> <option>")
	}
	q, err := strconv.Atoi(args[0])
	if err != nil {
		return usage("answer <question> <option>")
	}
	opt, ok := optionIndex(args[1])
	if !ok {
		return usage("answer <question> <option>")
	}
	if err := a.roadmap.Answer(q-1, opt); err != nil {
		return err
	}
	printlnFn(a.render.Quiz(a.roadmap.Quiz().Data, a.roadmap.Answers()))
	return nil
}

func (a *App) Submit(ctx context.Context, _ []string) error {
	if err := a.roadmap.SubmitAnswers(ctx); err != nil {
		return err
	}
	printlnFn(a.render.QuizResult(a.roadmap.Result().Data))
	return nil
}

func (a *App) Chat(ctx context.Context, args []string) error {
	reply, err := a.roadmap.Chat(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printlnFn(reply)
	return nil
}

// optionIndex turns "b" or "2" into 1.
func optionIndex(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, n >= 1
	}
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return int(s[0] - 'a'), true
	}
	return 0, false
}
