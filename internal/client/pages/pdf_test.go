package pages

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPDF_UploadAndAsk(t *testing.T) {
	var uploaded, filename string
	var asked client.AskPDFRequest
	e := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/upload-pdf/":
			f, hdr, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				return
			}
			b, _ := io.ReadAll(f)
			uploaded, filename = string(b), hdr.Filename
			_, _ = io.WriteString(w, `{"summary":"Go is simple","difficulty":"easy","keywords":"go, concurrency","search_queries":"go tour; effective go"}`)
		case "/ask-pdf/":
			_ = json.NewDecoder(r.Body).Decode(&asked)
			writeJSON(w, http.StatusOK, client.AnswerResponse{Answer: "Yes"})
		}
	}))
	e.login(t, "a@b.com")
	p := NewPDFPage(e.api, e.guard)
	ctx := context.Background()

	assert.Equal(t, "Upload a PDF first.", Message(p.Ask(ctx, "Is it simple?")))

	path := writeFile(t, "notes.PDF", "%PDF-1.4 body")
	require.NoError(t, p.Upload(ctx, path))
	assert.Equal(t, "%PDF-1.4 body", uploaded)
	assert.Equal(t, "notes.PDF", filename)
	assert.Equal(t, "notes.PDF", p.File())

	a := p.Analysis().Data
	require.NotNil(t, a)
	assert.Equal(t, []string{"go", "concurrency"}, a.Keywords)
	assert.Equal(t, []string{"go tour", "effective go"}, a.SearchQueries)

	assert.Equal(t, "Please enter a question.", Message(p.Ask(ctx, " ")))
	require.NoError(t, p.Ask(ctx, "Is it simple?"))
	assert.Equal(t, client.AskPDFRequest{Text: "Go is simple", Question: "Is it simple?"}, asked)
	assert.Equal(t, "Yes", p.Answer().Data)

	p.Reset()
	assert.Empty(t, p.File())
	assert.Nil(t, p.Analysis().Data)
}

func TestPDF_RejectsOtherFiles(t *testing.T) {
	e := newEnv(t, unreachable(t))
	e.login(t, "a@b.com")
	p := NewPDFPage(e.api, e.guard)

	path := writeFile(t, "notes.txt", "hello")
	assert.Equal(t, "Please select a PDF file.", Message(p.Upload(context.Background(), path)))
	assert.Equal(t, "Please select a PDF file.", Message(p.Upload(context.Background(), "")))
}

func TestPDF_MissingFile(t *testing.T) {
	e := newEnv(t, unreachable(t))
	e.login(t, "a@b.com")
	p := NewPDFPage(e.api, e.guard)

	err := p.Upload(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	assert.Equal(t, "Cannot open gone.pdf.", Message(err))
}

func TestPDF_BackendFailure(t *testing.T) {
	e := newEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	e.login(t, "a@b.com")
	p := NewPDFPage(e.api, e.guard)

	err := p.Upload(context.Background(), writeFile(t, "a.pdf", "x"))
	assert.Equal(t, "Failed to process PDF.", Message(err))
	assert.Equal(t, ErrorShown, p.Analysis().Phase)
}

func TestPDF_NoSession(t *testing.T) {
	e := newEnv(t, unreachable(t))
	p := NewPDFPage(e.api, e.guard)

	err := p.Upload(context.Background(), writeFile(t, "a.pdf", "x"))
	require.ErrorIs(t, err, ErrRedirected)
}
