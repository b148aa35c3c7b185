package pages

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
	"github.com/learnlink/learnlink/internal/client/voice"
	"github.com/learnlink/learnlink/internal/common"
	"github.com/learnlink/learnlink/internal/logging"
)

const (
	voiceMaxResults = 5
	// drainGrace is how long a finished upload waits for the last turns.
	drainGrace = 5 * time.Second
)

var voicePlatforms = []string{"web"}

// DialFunc opens a transcription stream.
type DialFunc func(ctx context.Context, url string, header http.Header, log logging.Logger) (*voice.Stream, error)

// VoicePage is /voice-chat: transcribe recorded audio and search for what
// was said.
type VoicePage struct {
	api   client.API
	guard *Guard
	dial  DialFunc
	log   logging.Logger

	ChunkSize int
	Interval  time.Duration

	mu      sync.Mutex
	lines   []string
	results View[[]client.SearchResult]
	stream  *voice.Stream
}

func NewVoicePage(api client.API, guard *Guard, dial DialFunc, log logging.Logger) *VoicePage {
	if dial == nil {
		dial = voice.Dial
	}
	return &VoicePage{
		api:       api,
		guard:     guard,
		dial:      dial,
		log:       log.With("page", "voice"),
		ChunkSize: voice.DefaultChunkSize,
		Interval:  voice.DefaultInterval,
	}
}

// TranscribeFile uploads a recording and searches for its transcript.
func (p *VoicePage) TranscribeFile(ctx context.Context, path string) error {
	var text View[string]
	err := run(ctx, p.guard, &text, "Transcription failed.",
		func(ctx context.Context, _ *session.User) (string, error) {
			f, err := os.Open(path)
			if err != nil {
				return "", &Failure{Msg: "Cannot open " + filepath.Base(path) + ".", Err: err}
			}
			defer f.Close()

			res, err := p.api.Transcribe(ctx, filepath.Base(path), f)
			if err != nil {
				return "", err
			}
			return res.Transcript, nil
		})
	if err != nil {
		return err
	}

	p.say(turnLine(text.Data, true))
	if strings.TrimSpace(text.Data) == "" {
		return nil
	}
	return p.search(ctx, text.Data)
}

// StreamFile plays the audio file at path into the live transcription
// socket. Each finished turn is searched for. It returns when the file has
// been streamed and the service has finished, or ctx is done.
func (p *VoicePage) StreamFile(ctx context.Context, path string) error {
	if p.guard.session.GetUser(ctx) == nil {
		return p.guard.toLogin(ctx, false)
	}
	token, err := p.guard.session.Token(ctx)
	if err != nil || token == "" {
		return p.guard.toLogin(ctx, false)
	}

	f, err := os.Open(path)
	if err != nil {
		return &Failure{Msg: "Cannot open " + filepath.Base(path) + ".", Err: err}
	}
	defer f.Close()

	header := http.Header{}
	header.Set(common.AuthHeaderName, common.BearerPrefix+token)

	s, err := p.dial(ctx, p.api.TranscribeStreamURL(), header, p.log)
	if err != nil {
		p.log.Warn(ctx, "transcription socket failed", "error", err)
		return &Failure{Msg: "WebSocket connection failed", Err: err}
	}

	p.mu.Lock()
	p.stream = s
	p.lines = nil
	p.mu.Unlock()

	drained := make(chan error, 1)
	go func() { drained <- p.consume(ctx, s) }()

	pumpErr := s.Pump(ctx, f, p.ChunkSize, p.Interval)

	var closedErr error
	select {
	case closedErr = <-drained:
	case <-ctx.Done():
	case <-time.After(drainGrace):
	}
	p.Stop()

	switch {
	case pumpErr != nil && !errors.Is(pumpErr, voice.ErrClosed) && !errors.Is(pumpErr, context.Canceled):
		return &Failure{Msg: "Audio streaming failed.", Err: pumpErr}
	case closedErr != nil:
		return &Failure{Msg: "WebSocket connection failed", Err: closedErr}
	}
	return nil
}

// consume renders events until the stream closes and returns its close error.
func (p *VoicePage) consume(ctx context.Context, s *voice.Stream) error {
	for ev := range s.Events() {
		switch e := ev.(type) {
		case voice.Begin:
			p.say("Session started: " + e.SessionID)
		case voice.Turn:
			p.say(turnLine(e.Transcript, e.EndOfTurn))
			if e.EndOfTurn && strings.TrimSpace(e.Transcript) != "" {
				if err := p.search(ctx, e.Transcript); err != nil {
					p.say("Search failed: " + Message(err))
				}
			}
		case voice.Terminated:
			p.say("Session ended: " + strconv.FormatFloat(e.AudioDurationSeconds, 'f', -1, 64) + "s processed")
			// the service is done; nothing more will arrive
			go s.Close()
		case voice.Failure:
			p.say("Error: " + e.Message)
		case voice.Closed:
			return e.Err
		}
	}
	return nil
}

func (p *VoicePage) search(ctx context.Context, transcript string) error {
	req := client.SearchRequest{Query: strings.TrimSpace(transcript), MaxResults: voiceMaxResults, Platforms: voicePlatforms}

	var v View[[]client.SearchResult]
	err := run(ctx, p.guard, &v, "Search failed. Please try again.",
		func(ctx context.Context, _ *session.User) ([]client.SearchResult, error) {
			res, err := p.api.Search(ctx, req, false)
			if err != nil {
				return nil, err
			}
			return res.Results, nil
		})

	p.mu.Lock()
	p.results = v
	p.mu.Unlock()
	return err
}

// Stop ends a running stream. It is a no-op when nothing is streaming.
func (p *VoicePage) Stop() {
	p.mu.Lock()
	s := p.stream
	p.stream = nil
	p.mu.Unlock()
	if s != nil {
		_ = s.Close()
	}
}

func (p *VoicePage) say(line string) {
	p.mu.Lock()
	p.lines = append(p.lines, line)
	p.mu.Unlock()
}

// Lines is the transcript log shown to the user.
func (p *VoicePage) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

func (p *VoicePage) Results() View[[]client.SearchResult] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

func (p *VoicePage) Reset() {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = nil
	p.results.Reset()
}

// turnLine shows a turn still being spoken with a trailing ellipsis.
func turnLine(text string, final bool) string {
	if strings.TrimSpace(text) == "" {
		return "(Empty transcription)"
	}
	if !final {
		return "You said: " + text + " ..."
	}
	return "You said: " + text
}
