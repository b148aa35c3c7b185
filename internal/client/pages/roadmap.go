package pages

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/repositories/progress"
	"github.com/learnlink/learnlink/internal/client/session"
)

const (
	CategoryRoleBased  = "role_based"
	CategorySkillBased = "skill_based"

	defaultSkillLevel = "beginner"
)

// RoadmapPage is /roadmap-generation: categories, generation, local
// progress and the quiz/chat session about the roadmap.
type RoadmapPage struct {
	api      client.API
	guard    *Guard
	progress progress.Repository

	categories View[map[string][]string]
	roadmap    View[*client.Roadmap]
	marks      progress.Progress

	quiz    View[*client.QuizSession]
	answers map[string]string
	result  View[*client.QuizResult]
}

func NewRoadmapPage(api client.API, guard *Guard, repo progress.Repository) *RoadmapPage {
	return &RoadmapPage{api: api, guard: guard, progress: repo, marks: progress.Progress{}}
}

func (p *RoadmapPage) LoadCategories(ctx context.Context) error {
	return run(ctx, p.guard, &p.categories, "Failed to load categories.",
		func(ctx context.Context, _ *session.User) (map[string][]string, error) {
			res, err := p.api.RoadmapCategories(ctx)
			if err != nil {
				return nil, err
			}
			if res.Categories == nil {
				return map[string][]string{}, nil
			}
			return res.Categories, nil
		})
}

func (p *RoadmapPage) Categories() View[map[string][]string] { return p.categories }

// Domains lists the domains of category whose name contains filter,
// ignoring case.
func (p *RoadmapPage) Domains(category, filter string) []string {
	filter = strings.ToLower(strings.TrimSpace(filter))
	var out []string
	for _, d := range p.categories.Data[category] {
		if strings.Contains(strings.ToLower(d), filter) {
			out = append(out, d)
		}
	}
	return out
}

// Generate asks for a new roadmap. The previous progress of that domain is
// discarded.
func (p *RoadmapPage) Generate(ctx context.Context, req client.RoadmapRequest) error {
	req.Domain = strings.TrimSpace(req.Domain)
	if req.Domain == "" {
		return invalid("Please select or enter a domain")
	}
	if req.Category == "" {
		req.Category = CategoryRoleBased
	}
	if req.Category != CategoryRoleBased && req.Category != CategorySkillBased {
		return invalid(fmt.Sprintf("Unknown category %q.", req.Category))
	}
	if req.SkillLevel == "" {
		req.SkillLevel = defaultSkillLevel
	}
	if req.CustomPreferences != nil && strings.TrimSpace(*req.CustomPreferences) == "" {
		req.CustomPreferences = nil
	}

	p.resetQuiz()
	p.marks = progress.Progress{}

	err := run(ctx, p.guard, &p.roadmap, "Failed to generate roadmap",
		func(ctx context.Context, _ *session.User) (*client.Roadmap, error) {
			rm, err := p.api.GenerateRoadmap(ctx, req)
			if err != nil {
				var se *client.StatusError
				if errors.As(err, &se) && !errors.Is(err, client.ErrUnauthorized) {
					return nil, &Failure{Msg: detailOr(err, "Failed to generate roadmap"), Err: err}
				}
				return nil, err
			}
			if rm.Domain == "" {
				rm.Domain = req.Domain
			}
			if rm.SkillLevel == "" {
				rm.SkillLevel = req.SkillLevel
			}
			return rm, nil
		})
	if err != nil {
		return err
	}

	if err := p.progress.Reset(ctx, p.roadmap.Data.Domain); err != nil {
		p.guard.log.Warn(ctx, "progress reset failed", "domain", p.roadmap.Data.Domain, "error", err)
	}
	return nil
}

func (p *RoadmapPage) Roadmap() View[*client.Roadmap] { return p.roadmap }

// Progress returns the marks of the current roadmap and the counts derived
// from them.
func (p *RoadmapPage) Progress() (marks progress.Progress, done, total int) {
	if p.roadmap.Data == nil {
		return progress.Progress{}, 0, 0
	}
	return p.marks, p.marks.Completed(), p.roadmap.Data.Items()
}

// Toggle flips the mark of key topic topic (0-based) of node (0-based).
// A topic of -1 addresses a node without key topics.
func (p *RoadmapPage) Toggle(ctx context.Context, node, topic int) (bool, error) {
	rm := p.roadmap.Data
	if !p.roadmap.Ready() || rm == nil {
		return false, invalid("Generate a roadmap first.")
	}
	if node < 0 || node >= len(rm.Nodes) {
		return false, invalid(fmt.Sprintf("No step %d in this roadmap.", node+1))
	}
	n := rm.Nodes[node]

	var id string
	switch {
	case len(n.KeyTopics) == 0:
		id = n.ID
	case topic >= 0 && topic < len(n.KeyTopics):
		id = progress.SubtopicID(n.ID, topic)
	default:
		return false, invalid(fmt.Sprintf("No topic %d in step %d.", topic+1, node+1))
	}

	done := !p.marks[id]
	marks, err := p.progress.Mark(ctx, rm.Domain, id, done)
	if err != nil {
		return false, &Failure{Msg: "Failed to save progress.", Err: err}
	}
	p.marks = marks
	return done, nil
}

// TrackedDomain is a domain with stored progress and how many of its items
// are marked.
type TrackedDomain struct {
	Domain    string
	Completed int
}

// Tracked lists the domains with stored progress, sorted by name.
func (p *RoadmapPage) Tracked(ctx context.Context) ([]TrackedDomain, error) {
	domains, err := p.progress.Domains(ctx)
	if err != nil {
		return nil, &Failure{Msg: "Failed to load progress.", Err: err}
	}
	sort.Strings(domains)

	out := make([]TrackedDomain, 0, len(domains))
	for _, d := range domains {
		marks, err := p.progress.Load(ctx, d)
		if err != nil {
			return nil, &Failure{Msg: "Failed to load progress.", Err: err}
		}
		out = append(out, TrackedDomain{Domain: d, Completed: marks.Completed()})
	}
	return out, nil
}

// StartQuiz opens a question session about the current roadmap.
func (p *RoadmapPage) StartQuiz(ctx context.Context) error {
	rm := p.roadmap.Data
	if rm == nil {
		return invalid("Generate a roadmap first.")
	}
	p.resetQuiz()
	req := client.StartSessionRequest{Domain: rm.Domain, SkillLevel: rm.SkillLevel}
	return run(ctx, p.guard, &p.quiz, "Failed to start session.",
		func(ctx context.Context, _ *session.User) (*client.QuizSession, error) {
			return p.api.StartSession(ctx, req)
		})
}

func (p *RoadmapPage) Quiz() View[*client.QuizSession] { return p.quiz }

// Answer records option (0-based) for question (0-based).
func (p *RoadmapPage) Answer(question, option int) error {
	q := p.quiz.Data
	if !p.quiz.Ready() || q == nil {
		return invalid("Start a quiz first.")
	}
	if question < 0 || question >= len(q.Questions) {
		return invalid(fmt.Sprintf("No question %d.", question+1))
	}
	qs := q.Questions[question]
	if option < 0 || option >= len(qs.Options) {
		return invalid(fmt.Sprintf("No option %d for question %d.", option+1, question+1))
	}
	p.answers[qs.ID] = qs.Options[option]
	return nil
}

func (p *RoadmapPage) SubmitAnswers(ctx context.Context) error {
	q := p.quiz.Data
	if !p.quiz.Ready() || q == nil {
		return invalid("Start a quiz first.")
	}
	if len(p.answers) < len(q.Questions) {
		return invalid("Please answer all questions.")
	}
	req := client.SubmitAnswersRequest{SessionID: q.SessionID, Answers: p.answers}
	return run(ctx, p.guard, &p.result, "Failed to submit answers.",
		func(ctx context.Context, _ *session.User) (*client.QuizResult, error) {
			return p.api.SubmitAnswers(ctx, req)
		})
}

// Answers maps question ids to the chosen option text.
func (p *RoadmapPage) Answers() map[string]string { return p.answers }

func (p *RoadmapPage) Result() View[*client.QuizResult] { return p.result }

// Chat sends message in the current quiz session and returns the reply.
func (p *RoadmapPage) Chat(ctx context.Context, message string) (string, error) {
	q := p.quiz.Data
	if q == nil || q.SessionID == "" {
		return "", invalid("Start a quiz first.")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", invalid("Please enter a message.")
	}
	reply := ""
	err := act(ctx, p.guard, "Failed to send message.", func(ctx context.Context, _ *session.User) error {
		res, err := p.api.Chat(ctx, client.ChatRequest{SessionID: q.SessionID, Message: message})
		if err != nil {
			return err
		}
		reply = res.Reply
		return nil
	})
	return reply, err
}

func (p *RoadmapPage) resetQuiz() {
	p.quiz.Reset()
	p.result.Reset()
	p.answers = map[string]string{}
}

func (p *RoadmapPage) Reset() {
	p.categories.Reset()
	p.roadmap.Reset()
	p.marks = progress.Progress{}
	p.resetQuiz()
}
