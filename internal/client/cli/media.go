package cli

import (
	"context"
	"strings"

	"github.com/learnlink/learnlink/internal/client/pages"
)

// PDF uploads a document and prints its analysis.
func (a *App) PDF(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("pdf <path>")
	}
	a.enter(pages.RoutePDF)

	printlnFn(a.render.Muted("Processing PDF..."))
	if err := a.pdf.Upload(ctx, strings.Join(args, " ")); err != nil {
		return err
	}
	printlnFn(a.render.PDF(a.pdf.File(), a.pdf.Analysis().Data))
	return nil
}

func (a *App) Ask(ctx context.Context, args []string) error {
	if err := a.pdf.Ask(ctx, strings.Join(args, " ")); err != nil {
		return err
	}
	printlnFn(a.pdf.Answer().Data)
	return nil
}

// Transcribe uploads a recording, then searches for what was said.
func (a *App) Transcribe(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("transcribe <path>")
	}
	a.enter(pages.RouteVoice)

	err := a.voice.TranscribeFile(ctx, strings.Join(args, " "))
	a.printVoice()
	return err
}

// Stream plays a recording into the live transcription socket.
func (a *App) Stream(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("stream <path>")
	}
	a.enter(pages.RouteVoice)

	printlnFn(a.render.Muted("Streaming..."))
	err := a.voice.StreamFile(ctx, strings.Join(args, " "))
	a.printVoice()
	return err
}

func (a *App) printVoice() {
	printlnFn(a.render.Lines(a.voice.Lines()))
	if res := a.voice.Results().Data; len(res) > 0 {
		printlnFn(a.render.Title("Results"))
		printlnFn(a.render.Results(res))
	}
}
