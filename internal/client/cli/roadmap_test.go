package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/pages"
)

func stubMultiline(t *testing.T, text string) {
	t.Helper()
	orig := getMultiline
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	t.Cleanup(func() { getMultiline = orig })
}

func roadmapBackend(t *testing.T, generated chan<- client.RoadmapRequest) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/roadmap/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.CategoriesResponse{Categories: map[string][]string{
			pages.CategoryRoleBased:  {"Backend Developer", "Data Scientist"},
			pages.CategorySkillBased: {"Go", "Docker"},
		}})
	})
	mux.HandleFunc("/roadmap/generate", func(w http.ResponseWriter, r *http.Request) {
		var req client.RoadmapRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		generated <- req
		writeJSON(w, http.StatusOK, client.Roadmap{
			Domain: req.Domain,
			Title:  "Backend path",
			Nodes: []client.RoadmapNode{
				{ID: "n1", Title: "Basics", KeyTopics: []string{"HTTP", "SQL"}},
				{ID: "n2", Title: "Deploy"},
			},
		})
	})
	mux.HandleFunc("/start_session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.QuizSession{SessionID: "s1", Questions: []client.Question{
			{ID: "q1", Question: "2+2?", Options: []string{"3", "4"}},
		}})
	})
	mux.HandleFunc("/submit_answers", func(w http.ResponseWriter, r *http.Request) {
		var req client.SubmitAnswersRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		score := 0
		if req.Answers["q1"] == "4" {
			score = 1
		}
		writeJSON(w, http.StatusOK, client.QuizResult{Score: score, Total: 1, Feedback: "Nice"})
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req client.ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, client.ChatResponse{Reply: "echo: " + req.Message})
	})
	return mux
}

func TestCategories(t *testing.T) {
	out := capturePrintln(t)
	a := newTestApp(t, roadmapBackend(t, nil), "")
	a.login(t, "ada@example.com")
	ctx := context.Background()

	require.NoError(t, a.Categories(ctx, []string{"role_based", "data"}))
	assert.Equal(t, pages.RouteRoadmap, a.currentRoute())
	assert.Contains(t, out.all(), "Data Scientist")
	assert.NotContains(t, out.all(), "Backend Developer")

	require.ErrorIs(t, a.Categories(ctx, []string{"nope"}), errUsage)
}

func TestGenerateAndTrackProgress(t *testing.T) {
	out := capturePrintln(t)
	generated := make(chan client.RoadmapRequest, 1)
	a := newTestApp(t, roadmapBackend(t, generated), "")
	a.login(t, "ada@example.com")
	stubInputs(t, []string{"", "intermediate"}, nil)
	stubMultiline(t, "")
	ctx := context.Background()

	require.NoError(t, a.Generate(ctx, []string{"Backend", "Developer"}))

	req := <-generated
	assert.Equal(t, "Backend Developer", req.Domain)
	assert.Equal(t, pages.CategoryRoleBased, req.Category)
	assert.Equal(t, "intermediate", req.SkillLevel)
	assert.Nil(t, req.CustomPreferences)
	assert.Contains(t, out.all(), "Backend path")

	out.reset()
	require.NoError(t, a.Done(ctx, []string{"1.2"}))
	assert.Contains(t, out.all(), "Completed 1.2.")
	assert.Contains(t, out.all(), "1/3")

	require.NoError(t, a.Done(ctx, []string{"2"}))
	assert.Contains(t, out.all(), "2/3")

	out.reset()
	require.NoError(t, a.Done(ctx, []string{"1.2"}))
	assert.Contains(t, out.all(), "Unmarked 1.2.")

	out.reset()
	require.NoError(t, a.Tracked(ctx, nil))
	assert.Contains(t, out.all(), "Backend Developer (1 completed)")
}

func TestDone_Errors(t *testing.T) {
	capturePrintln(t)
	a := newTestApp(t, roadmapBackend(t, nil), "")
	a.login(t, "ada@example.com")
	ctx := context.Background()

	require.ErrorIs(t, a.Done(ctx, nil), errUsage)
	require.ErrorIs(t, a.Done(ctx, []string{"x"}), errUsage)
	require.ErrorIs(t, a.Done(ctx, []string{"1.y"}), errUsage)

	err := a.Done(ctx, []string{"1"})
	require.Error(t, err)
	assert.Equal(t, "Generate a roadmap first.", pages.Message(err))
}

func TestQuizFlow(t *testing.T) {
	out := capturePrintln(t)
	generated := make(chan client.RoadmapRequest, 1)
	a := newTestApp(t, roadmapBackend(t, generated), "")
	a.login(t, "ada@example.com")
	stubInputs(t, []string{"", ""}, nil)
	stubMultiline(t, "")
	ctx := context.Background()

	require.NoError(t, a.Generate(ctx, []string{"Go"}))
	<-generated

	require.NoError(t, a.Quiz(ctx, nil))
	assert.Contains(t, out.all(), "2+2?")

	err := a.Submit(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, "Please answer all questions.", pages.Message(err))

	require.ErrorIs(t, a.Answer(ctx, []string{"1"}), errUsage)
	require.NoError(t, a.Answer(ctx, []string{"1", "b"}))

	out.reset()
	require.NoError(t, a.Submit(ctx, nil))
	assert.Contains(t, out.all(), "Score: 1/1")

	out.reset()
	require.NoError(t, a.Chat(ctx, []string{"why", "4?"}))
	assert.Equal(t, "echo: why 4?", out.all())
}

func TestOptionIndex(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "a", want: 0, wantOK: true},
		{in: "C", want: 2, wantOK: true},
		{in: "2", want: 1, wantOK: true},
		{in: "0", want: -1, wantOK: false},
		{in: "ab", wantOK: false},
		{in: "?", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := optionIndex(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
