package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/pages"
)

func TestPDFAndAsk(t *testing.T) {
	out := capturePrintln(t)
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/upload-pdf/":
			_, _ = io.WriteString(w, `{"summary":"Go is simple","difficulty":"easy","keywords":"go, concurrency","search_queries":"go tour"}`)
		case "/ask-pdf/":
			writeJSON(w, http.StatusOK, client.AnswerResponse{Answer: "Yes, very."})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}), "")
	a.login(t, "ada@example.com")
	ctx := context.Background()

	require.ErrorIs(t, a.PDF(ctx, nil), errUsage)

	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	require.NoError(t, a.PDF(ctx, []string{path}))
	assert.Equal(t, pages.RoutePDF, a.currentRoute())
	assert.Contains(t, out.all(), "Go is simple")
	assert.Contains(t, out.all(), "difficulty: easy")

	out.reset()
	require.NoError(t, a.Ask(ctx, []string{"Is", "it", "simple?"}))
	assert.Equal(t, "Yes, very.", out.all())
}

func TestPDF_RejectsOtherFiles(t *testing.T) {
	capturePrintln(t)
	a := newTestApp(t, http.NotFoundHandler(), "")
	a.login(t, "ada@example.com")

	err := a.PDF(context.Background(), []string{"notes.txt"})
	require.Error(t, err)
	assert.Equal(t, "Please select a PDF file.", pages.Message(err))
}

func TestTranscribe(t *testing.T) {
	out := capturePrintln(t)
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transcribe":
			_, _ = io.WriteString(w, `{"text":"learn go"}`)
		case "/search":
			writeJSON(w, http.StatusOK, client.SearchResponse{Results: []client.SearchResult{
				{Title: "Go Tour", URL: "https://go.dev/tour", Platform: "web"},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}), "")
	a.login(t, "ada@example.com")
	ctx := context.Background()

	require.ErrorIs(t, a.Transcribe(ctx, nil), errUsage)
	require.ErrorIs(t, a.Stream(ctx, nil), errUsage)

	path := filepath.Join(t.TempDir(), "talk.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))

	require.NoError(t, a.Transcribe(ctx, []string{path}))
	assert.Equal(t, pages.RouteVoice, a.currentRoute())
	assert.Contains(t, out.all(), "You said: learn go")
	assert.Contains(t, out.all(), "Go Tour")
}
