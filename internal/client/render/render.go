package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/repositories/progress"
)

const (
	descriptionWidth = 160
	barWidth         = 20
)

// Renderer formats page data. Every method returns text without a trailing
// newline.
type Renderer struct {
	s Styles
}

// New returns a colored renderer, or a plain one when plain is set.
func New(plain bool) *Renderer {
	if plain {
		return &Renderer{s: PlainStyles()}
	}
	return &Renderer{s: DefaultTheme().Styles()}
}

func (r *Renderer) Title(s string) string { return r.s.Title.Render(s) }
func (r *Renderer) Success(s string) string { return r.s.Success.Render(s) }
func (r *Renderer) Error(s string) string { return r.s.Danger.Render(s) }
func (r *Renderer) Info(s string) string { return r.s.Info.Render(s) }
func (r *Renderer) Muted(s string) string { return r.s.Muted.Render(s) }

// Status is the prompt line: connectivity and the signed in user.
func (r *Renderer) Status(online bool, user string) string {
	state := r.s.Success.Render("online")
	if !online {
		state = r.s.Warning.Render("offline")
	}
	if user == "" {
		user = "not logged in"
	}
	return fmt.Sprintf("[%s] %s", state, r.s.Muted.Render(user))
}

// Results lists search results numbered from 1.
func (r *Renderer) Results(results []client.SearchResult) string {
	if len(results) == 0 {
		return r.s.Muted.Render("No results.")
	}
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%2d. %s %s", i+1, r.platform(res.Platform), r.s.Text.Render(res.Title))
		if res.URL != "" {
			b.WriteString("\n    " + r.s.Accent.Render(res.URL))
		}
		if d := truncate(oneLine(res.Description), descriptionWidth); d != "" {
			b.WriteString("\n    " + r.s.Muted.Render(d))
		}
	}
	return b.String()
}

// ResultDetail shows one result with its description and related topics.
func (r *Renderer) ResultDetail(res client.SearchResult, description string, topics []string) string {
	var b strings.Builder
	b.WriteString(r.platform(res.Platform) + " " + r.s.Title.Render(res.Title))
	if res.URL != "" {
		b.WriteString("\n" + r.s.Accent.Render(res.URL))
	}
	if description != "" {
		b.WriteString("\n\n" + description)
	}
	if len(topics) > 0 {
		b.WriteString("\n\n" + r.s.Title.Render("Related topics"))
		for i, t := range topics {
			fmt.Fprintf(&b, "\n%2d. %s", i+1, t)
		}
	}
	return b.String()
}

// Profile shows the user's document and bookmarks.
func (r *Renderer) Profile(p *client.Profile) string {
	if p == nil {
		return r.s.Muted.Render("No profile loaded.")
	}
	var b strings.Builder
	name := p.Name
	if name == "" {
		name = p.Email
	}
	b.WriteString(r.s.Title.Render(name))
	if p.Name != "" {
		b.WriteString(" " + r.s.Muted.Render("<"+p.Email+">"))
	}

	section := func(title string, lines []string) {
		b.WriteString("\n\n" + r.s.Title.Render(title))
		if len(lines) == 0 {
			b.WriteString("\n  " + r.s.Muted.Render("none"))
			return
		}
		for _, l := range lines {
			b.WriteString("\n  - " + l)
		}
	}

	edu := make([]string, 0, len(p.Education))
	for _, e := range p.Education {
		edu = append(edu, fmt.Sprintf("%s, %s in %s %s", e.University, e.Degree, e.Field, r.years(e.StartYear, e.EndYear)))
	}
	section("Education", edu)

	work := make([]string, 0, len(p.Work))
	for _, w := range p.Work {
		work = append(work, fmt.Sprintf("%s at %s (%s) %s", w.Role, w.Company, w.Field, r.years(w.StartYear, w.EndYear)))
	}
	section("Work experience", work)

	projects := make([]string, 0, len(p.Projects))
	for _, pr := range p.Projects {
		projects = append(projects, fmt.Sprintf("%s [%s] %s: %s", pr.Name, pr.Technologies, r.years(pr.StartYear, pr.EndYear), pr.Description))
	}
	section("Projects", projects)

	section("Bookmarks", p.Bookmarks)
	return b.String()
}

// Categories lists the domains of each roadmap category in a stable order.
func (r *Renderer) Categories(categories map[string][]string) string {
	if len(categories) == 0 {
		return r.s.Muted.Render("No categories.")
	}
	names := make([]string, 0, len(categories))
	for k := range categories {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.s.Title.Render(n) + "\n")
		b.WriteString(r.Domains(categories[n]))
	}
	return b.String()
}

// Domains is a numbered list of domain names.
func (r *Renderer) Domains(domains []string) string {
	if len(domains) == 0 {
		return r.s.Muted.Render("  no matching domains")
	}
	lines := make([]string, len(domains))
	for i, d := range domains {
		lines[i] = fmt.Sprintf("%3d. %s", i+1, d)
	}
	return strings.Join(lines, "\n")
}

// Roadmap shows the steps with their checkable topics and overall progress.
func (r *Renderer) Roadmap(rm *client.Roadmap, marks progress.Progress) string {
	if rm == nil {
		return r.s.Muted.Render("No roadmap yet.")
	}
	var b strings.Builder
	b.WriteString(r.s.Title.Render(rm.Title))
	if rm.Description != "" {
		b.WriteString("\n" + r.s.Muted.Render(rm.Description))
	}
	meta := []string{rm.Domain, rm.SkillLevel}
	if rm.TotalEstimatedHours > 0 {
		meta = append(meta, hours(rm.TotalEstimatedHours))
	}
	b.WriteString("\n" + r.s.Muted.Render(strings.Join(nonEmpty(meta), " | ")))

	for i, n := range rm.Nodes {
		b.WriteString("\n\n")
		head := fmt.Sprintf("%d. %s", i+1, n.Title)
		if n.EstimatedTimeHours > 0 {
			head += " " + r.s.Muted.Render("("+hours(n.EstimatedTimeHours)+")")
		}
		if marks.NodeComplete(n.ID, len(n.KeyTopics)) {
			head = r.s.Success.Render("✓") + " " + head
		}
		b.WriteString(head)
		if n.Description != "" {
			b.WriteString("\n   " + r.s.Muted.Render(n.Description))
		}
		if len(n.KeyTopics) == 0 {
			b.WriteString("\n   " + r.check(marks[n.ID]) + " " + n.Title)
		}
		for j, t := range n.KeyTopics {
			b.WriteString(fmt.Sprintf("\n   %s %d.%d %s", r.check(marks[progress.SubtopicID(n.ID, j)]), i+1, j+1, t))
		}
	}

	b.WriteString("\n\n" + r.Progress(marks.Completed(), rm.Items()))
	return b.String()
}

// Progress is a bar with the done/total counts.
func (r *Renderer) Progress(done, total int) string {
	pct := 0
	if total > 0 {
		pct = done * 100 / total
	}
	filled := pct * barWidth / 100
	bar := r.s.Success.Render(strings.Repeat("#", filled)) + r.s.Muted.Render(strings.Repeat("-", barWidth-filled))
	return fmt.Sprintf("Progress [%s] %d/%d (%d%%)", bar, done, total, pct)
}

// PDF shows a document analysis.
func (r *Renderer) PDF(file string, a *client.PDFAnalysis) string {
	if a == nil {
		return r.s.Muted.Render("No document analysed yet.")
	}
	var b strings.Builder
	b.WriteString(r.s.Title.Render(file))
	stats := []string{
		strconv.Itoa(a.WordCount()) + " words",
		a.ReadingMinutes() + " min read",
	}
	if a.Difficulty != "" {
		stats = append(stats, "difficulty: "+a.Difficulty)
	}
	b.WriteString("\n" + r.s.Muted.Render(strings.Join(stats, " | ")))
	b.WriteString("\n\n" + r.s.Box.Render(a.Summary))
	if len(a.Keywords) > 0 {
		b.WriteString("\n\n" + r.s.Title.Render("Keywords") + "\n" + strings.Join(a.Keywords, ", "))
	}
	if len(a.SearchQueries) > 0 {
		b.WriteString("\n\n" + r.s.Title.Render("Suggested searches"))
		for i, q := range a.SearchQueries {
			fmt.Fprintf(&b, "\n%2d. %s", i+1, q)
		}
	}
	return b.String()
}

// Quiz lists the questions with the chosen answers marked.
func (r *Renderer) Quiz(q *client.QuizSession, answers map[string]string) string {
	if q == nil || len(q.Questions) == 0 {
		return r.s.Muted.Render("No questions.")
	}
	var b strings.Builder
	for i, qs := range q.Questions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Q%d. %s", i+1, qs.Question)
		for j, o := range qs.Options {
			mark := " "
			if answers[qs.ID] == o {
				mark = r.s.Success.Render("*")
			}
			fmt.Fprintf(&b, "\n  %s %c) %s", mark, 'a'+rune(j), o)
		}
	}
	return b.String()
}

func (r *Renderer) QuizResult(res *client.QuizResult) string {
	if res == nil {
		return ""
	}
	out := r.s.Title.Render(fmt.Sprintf("Score: %d/%d", res.Score, res.Total))
	if res.Feedback != "" {
		out += "\n" + res.Feedback
	}
	return out
}

// Lines renders the voice transcript log.
func (r *Renderer) Lines(lines []string) string {
	if len(lines) == 0 {
		return r.s.Muted.Render("Nothing transcribed yet.")
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) platform(name string) string {
	if name == "" {
		name = "web"
	}
	return r.s.Platform(strings.ToLower(name)).Render("[" + name + "]")
}

func (r *Renderer) check(done bool) string {
	if done {
		return r.s.Success.Render("[x]")
	}
	return "[ ]"
}

func (r *Renderer) years(start, end client.FlexString) string {
	if start == "" && end == "" {
		return ""
	}
	return r.s.Muted.Render(fmt.Sprintf("(%s-%s)", start, end))
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

func nonEmpty(items []string) []string {
	out := items[:0]
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most width cells, ending in "...".
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + "..."
}
