package pages

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
)

const msgPDFFailed = "Failed to process PDF."

// PDFPage is /upload-pdf: summarize a document, then ask about it.
type PDFPage struct {
	api   client.API
	guard *Guard

	file     string
	analysis View[*client.PDFAnalysis]
	answer   View[string]
}

func NewPDFPage(api client.API, guard *Guard) *PDFPage {
	return &PDFPage{api: api, guard: guard}
}

// Upload sends the PDF at path for analysis.
func (p *PDFPage) Upload(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" || !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return invalid("Please select a PDF file.")
	}

	p.answer.Reset()
	return run(ctx, p.guard, &p.analysis, msgPDFFailed,
		func(ctx context.Context, _ *session.User) (*client.PDFAnalysis, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, &Failure{Msg: "Cannot open " + filepath.Base(path) + ".", Err: err}
			}
			defer f.Close()

			a, err := p.api.UploadPDF(ctx, filepath.Base(path), f)
			if err != nil {
				return nil, err
			}
			p.file = filepath.Base(path)
			return a, nil
		})
}

// Ask questions the uploaded document through its summary.
func (p *PDFPage) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return invalid("Please enter a question.")
	}
	if !p.analysis.Ready() || p.analysis.Data == nil || p.analysis.Data.Summary == "" {
		return invalid("Upload a PDF first.")
	}

	req := client.AskPDFRequest{Text: p.analysis.Data.Summary, Question: question}
	return run(ctx, p.guard, &p.answer, msgPDFFailed,
		func(ctx context.Context, _ *session.User) (string, error) {
			res, err := p.api.AskPDF(ctx, req)
			if err != nil {
				return "", err
			}
			return res.Answer, nil
		})
}

func (p *PDFPage) File() string { return p.file }

func (p *PDFPage) Analysis() View[*client.PDFAnalysis] { return p.analysis }

func (p *PDFPage) Answer() View[string] { return p.answer }

func (p *PDFPage) Reset() {
	p.file = ""
	p.analysis.Reset()
	p.answer.Reset()
}
