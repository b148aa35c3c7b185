package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/learnlink/learnlink/internal/common"
)

// FlexString decodes a JSON string, number or null into a string. Profile
// years come back either way depending on how they were saved.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("flex string: %w", err)
		}
		*f = FlexString(n.String())
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type Education struct {
	University string     `json:"university"`
	Degree     string     `json:"degree"`
	Field      string     `json:"field"`
	StartYear  FlexString `json:"start_year"`
	EndYear    FlexString `json:"end_year"`
}

type Work struct {
	Company   string     `json:"company"`
	Role      string     `json:"role"`
	Field     string     `json:"field"`
	StartYear FlexString `json:"start_year"`
	EndYear   FlexString `json:"end_year"`
}

type Project struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Technologies string     `json:"technologies"`
	StartYear    FlexString `json:"start_year"`
	EndYear      FlexString `json:"end_year"`
}

// Profile is the backend's user document. Fields the client does not know
// about are kept in Extra so a save never drops them.
type Profile struct {
	Email     string      `json:"email"`
	Name      string      `json:"name,omitempty"`
	Education []Education `json:"education,omitempty"`
	Work      []Work      `json:"work,omitempty"`
	Projects  []Project   `json:"projects,omitempty"`
	Bookmarks []string    `json:"bookmarks,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type profileFields Profile

var profileKeys = []string{"email", "name", "education", "work", "projects", "bookmarks"}

func (p *Profile) UnmarshalJSON(b []byte) error {
	var known profileFields
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range profileKeys {
		delete(all, k)
	}
	*p = Profile(known)
	if len(all) > 0 {
		p.Extra = all
	}
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(profileFields(p))
	if err != nil || len(p.Extra) == 0 {
		return b, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, ok := all[k]; !ok {
			all[k] = v
		}
	}
	return json.Marshal(all)
}

// HasBookmark reports whether url is already saved.
func (p *Profile) HasBookmark(url string) bool {
	for _, b := range p.Bookmarks {
		if b == url {
			return true
		}
	}
	return false
}

type SearchRequest struct {
	Query      string   `json:"query"`
	MaxResults int      `json:"max_results"`
	Platforms  []string `json:"platforms"`
}

type SearchResult struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	URL             string  `json:"url"`
	Platform        string  `json:"platform"`
	Thumbnail       string  `json:"thumbnail,omitempty"`
	SimilarityScore float64 `json:"similarity_score,omitempty"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type AIDescriptionRequest struct {
	URL                 string `json:"url"`
	Platform            string `json:"platform"`
	OriginalDescription string `json:"original_description"`
	UserQuery           string `json:"user_query"`
}

type DescriptionResponse struct {
	DetailedDescription string `json:"detailed_description"`
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type CategoriesResponse struct {
	Categories map[string][]string `json:"categories"`
}

type RoadmapRequest struct {
	Domain     string `json:"domain"`
	Category   string `json:"category"`
	SkillLevel string `json:"skill_level"`
	// CustomPreferences is sent as null when empty.
	CustomPreferences *string `json:"custom_preferences"`
}

type RoadmapNode struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Level              int      `json:"level"`
	EstimatedTimeHours float64  `json:"estimated_time_hours"`
	KeyTopics          []string `json:"key_topics"`
}

type Roadmap struct {
	Domain              string        `json:"domain"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	SkillLevel          string        `json:"skill_level"`
	TotalEstimatedHours float64       `json:"total_estimated_hours"`
	Nodes               []RoadmapNode `json:"nodes"`
}

// Items counts the checkable entries: every key topic, or the node itself
// when it has none.
func (r *Roadmap) Items() int {
	n := 0
	for _, node := range r.Nodes {
		if len(node.KeyTopics) > 0 {
			n += len(node.KeyTopics)
		} else {
			n++
		}
	}
	return n
}

type StartSessionRequest struct {
	Domain     string `json:"domain"`
	SkillLevel string `json:"skill_level"`
}

type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizSession struct {
	SessionID string     `json:"session_id"`
	Questions []Question `json:"questions"`
}

type SubmitAnswersRequest struct {
	SessionID string            `json:"session_id"`
	Answers   map[string]string `json:"answers"`
}

type QuizResult struct {
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	Feedback string `json:"feedback"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// PDFAnalysis normalizes keywords (sometimes a comma separated string) and
// search queries (sometimes a ';' separated string) into lists.
type PDFAnalysis struct {
	Summary       string   `json:"summary"`
	Difficulty    string   `json:"difficulty"`
	Keywords      []string `json:"keywords"`
	SearchQueries []string `json:"search_queries"`
}

func (a *PDFAnalysis) UnmarshalJSON(b []byte) error {
	var raw struct {
		Summary       string          `json:"summary"`
		Difficulty    FlexString      `json:"difficulty"`
		Keywords      json.RawMessage `json:"keywords"`
		SearchQueries json.RawMessage `json:"search_queries"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	kw, err := listOrString(raw.Keywords, ",")
	if err != nil {
		return fmt.Errorf("keywords: %w", err)
	}
	sq, err := listOrString(raw.SearchQueries, ";")
	if err != nil {
		return fmt.Errorf("search_queries: %w", err)
	}
	*a = PDFAnalysis{
		Summary:       raw.Summary,
		Difficulty:    string(raw.Difficulty),
		Keywords:      kw,
		SearchQueries: sq,
	}
	return nil
}

// WordCount and ReadingMinutes (at 120 words per minute) describe the summary.
func (a *PDFAnalysis) WordCount() int {
	return len(strings.Fields(a.Summary))
}

func (a *PDFAnalysis) ReadingMinutes() string {
	return strconv.FormatFloat(float64(a.WordCount())/120, 'f', 1, 64)
}

func listOrString(raw json.RawMessage, sep string) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return common.SplitList(s, sep), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

type AskPDFRequest struct {
	Text     string `json:"text"`
	Question string `json:"question"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type Transcription struct {
	Transcript string `json:"transcript"`
}

func (t *Transcription) UnmarshalJSON(b []byte) error {
	var raw struct {
		Transcript string `json:"transcript"`
		Text       string `json:"text"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Transcript = raw.Transcript
	if t.Transcript == "" {
		t.Transcript = raw.Text
	}
	return nil
}

type RecommendationsResponse struct {
	Results []SearchResult `json:"results"`
}
