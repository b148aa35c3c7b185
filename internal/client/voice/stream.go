// Package voice streams audio to the backend's live transcription socket
// and turns its JSON messages into typed events.
package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/learnlink/learnlink/internal/logging"
	"golang.org/x/net/websocket"
)

const (
	// DefaultChunkSize and DefaultInterval pace file streaming like a live mic.
	DefaultChunkSize = 4096
	DefaultInterval  = 250 * time.Millisecond

	eventBuffer = 32
)

var ErrClosed = errors.New("stream closed")

// Event is one of Begin, Turn, Terminated, Failure or Closed.
type Event interface {
	event()
}

type Begin struct {
	SessionID string
}

type Turn struct {
	Transcript string
	EndOfTurn  bool
}

type Terminated struct {
	AudioDurationSeconds float64
}

// Failure is an error reported by the transcription service. The socket stays open.
type Failure struct {
	Message string
}

// Closed is always the last event. Err is nil for an orderly shutdown.
type Closed struct {
	Err error
}

func (Begin) event()      {}
func (Turn) event()       {}
func (Terminated) event() {}
func (Failure) event()    {}
func (Closed) event()     {}

type wireEvent struct {
	Event                string  `json:"event"`
	SessionID            string  `json:"session_id"`
	Transcript           string  `json:"transcript"`
	EndOfTurn            bool    `json:"end_of_turn"`
	AudioDurationSeconds float64 `json:"audio_duration_seconds"`
	Message              string  `json:"message"`
}

func (w wireEvent) typed() Event {
	switch w.Event {
	case "begin":
		return Begin{SessionID: w.SessionID}
	case "turn":
		return Turn{Transcript: w.Transcript, EndOfTurn: w.EndOfTurn}
	case "terminated":
		return Terminated{AudioDurationSeconds: w.AudioDurationSeconds}
	case "error":
		return Failure{Message: w.Message}
	default:
		return nil
	}
}

// Stream is one live transcription session.
type Stream struct {
	conn   *websocket.Conn
	log    logging.Logger
	events chan Event

	sendMu    sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Dial opens the socket at rawURL (ws:// or wss://) sending header with the
// handshake, and starts delivering events.
func Dial(ctx context.Context, rawURL string, header http.Header, log logging.Logger) (*Stream, error) {
	origin, err := originOf(rawURL)
	if err != nil {
		return nil, err
	}
	cfg, err := websocket.NewConfig(rawURL, origin)
	if err != nil {
		return nil, fmt.Errorf("websocket config: %w", err)
	}
	cfg.Header = header.Clone()
	if cfg.Header == nil {
		cfg.Header = http.Header{}
	}

	conn, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rawURL, err)
	}

	if log == nil {
		log = logging.Discard()
	}
	s := &Stream{
		conn:   conn,
		log:    log.With("component", "voice"),
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// Events delivers the session's events and is closed right after Closed.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Send writes one audio chunk as a binary frame.
func (s *Stream) Send(chunk []byte) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := websocket.Message.Send(s.conn, chunk); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

// Pump streams r in chunkSize pieces, one every interval, until r is
// exhausted (nil), ctx is done or the stream is closed.
func (s *Stream) Pump(ctx context.Context, r io.Reader, chunkSize int, interval time.Duration) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	buf := make([]byte, chunkSize)
	sent := 0
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if serr := s.Send(buf[:n]); serr != nil {
				return serr
			}
			sent += n
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			s.log.Debug(ctx, "audio streamed", "bytes", sent)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return ErrClosed
		case <-ticker.C:
		}
	}
}

// Close tears down the socket. It is safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *Stream) readLoop() {
	defer close(s.events)

	for {
		var data []byte
		if err := websocket.Message.Receive(s.conn, &data); err != nil {
			s.finish(err)
			return
		}

		var w wireEvent
		if err := json.Unmarshal(data, &w); err != nil {
			s.log.Warn(context.Background(), "malformed transcription message", "error", err)
			continue
		}
		ev := w.typed()
		if ev == nil {
			s.log.Debug(context.Background(), "ignoring transcription message", "event", w.Event)
			continue
		}
		select {
		case s.events <- ev:
		case <-s.done:
		}
	}
}

func (s *Stream) finish(err error) {
	closing := false
	select {
	case <-s.done:
		closing = true
	default:
	}
	if closing || errors.Is(err, io.EOF) {
		err = nil
	}

	ev := Closed{Err: err}
	if closing {
		// nobody may be listening any more
		select {
		case s.events <- ev:
		default:
		}
		return
	}
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func originOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse stream url %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	default:
		return "", fmt.Errorf("parse stream url %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	u.Path = ""
	u.RawQuery = ""
	return u.String(), nil
}
