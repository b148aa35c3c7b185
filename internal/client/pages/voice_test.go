package pages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/voice"
	"github.com/learnlink/learnlink/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

type voiceBackend struct {
	mux *http.ServeMux

	mu       sync.Mutex
	wsAuth   string
	searches []client.SearchRequest
}

func newVoiceBackend(t *testing.T, chunks int) *voiceBackend {
	b := &voiceBackend{mux: http.NewServeMux()}
	b.mux.Handle("/ws/transcribe", websocket.Handler(func(ws *websocket.Conn) {
		b.mu.Lock()
		b.wsAuth = ws.Request().Header.Get("Authorization")
		b.mu.Unlock()

		_ = websocket.JSON.Send(ws, map[string]any{"event": "begin", "session_id": "sess-1"})
		for i := 0; i < chunks; i++ {
			var data []byte
			if err := websocket.Message.Receive(ws, &data); err != nil {
				return
			}
		}
		_ = websocket.JSON.Send(ws, map[string]any{"event": "turn", "transcript": "learn", "end_of_turn": false})
		_ = websocket.JSON.Send(ws, map[string]any{"event": "turn", "transcript": "learn go", "end_of_turn": true})
		_ = websocket.JSON.Send(ws, map[string]any{"event": "turn", "transcript": "", "end_of_turn": true})
		_ = websocket.JSON.Send(ws, map[string]any{"event": "error", "message": "quota"})
		_ = websocket.JSON.Send(ws, map[string]any{"event": "terminated", "audio_duration_seconds": 1.5})
	}))
	b.mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		var req client.SearchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.searches = append(b.searches, req)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, client.SearchResponse{Results: []client.SearchResult{{Title: req.Query}}})
	})
	b.mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": "learn rust"})
	})
	return b
}

func (b *voiceBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mux.ServeHTTP(w, r)
}

func TestVoice_StreamFile(t *testing.T) {
	b := newVoiceBackend(t, 2)
	e := newEnv(t, b)
	tok := e.login(t, "a@b.com")
	p := NewVoicePage(e.api, e.guard, nil, logging.Discard())
	p.ChunkSize = 4
	p.Interval = time.Millisecond

	path := writeFile(t, "clip.wav", "12345678")
	require.NoError(t, p.StreamFile(context.Background(), path))

	assert.Equal(t, []string{
		"Session started: sess-1",
		"You said: learn ...",
		"You said: learn go",
		"(Empty transcription)",
		"Error: quota",
		"Session ended: 1.5s processed",
	}, p.Lines())

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "Bearer "+tok, b.wsAuth)
	require.Len(t, b.searches, 1)
	assert.Equal(t, client.SearchRequest{Query: "learn go", MaxResults: 5, Platforms: []string{"web"}}, b.searches[0])
	assert.Equal(t, "learn go", p.Results().Data[0].Title)
}

func TestVoice_DialFailure(t *testing.T) {
	e := newEnv(t, unreachable(t))
	e.login(t, "a@b.com")
	dial := func(context.Context, string, http.Header, logging.Logger) (*voice.Stream, error) {
		return nil, errors.New("refused")
	}
	p := NewVoicePage(e.api, e.guard, dial, logging.Discard())

	err := p.StreamFile(context.Background(), writeFile(t, "clip.wav", "1234"))
	assert.Equal(t, "WebSocket connection failed", Message(err))
	p.Stop()
}

func TestVoice_StreamNeedsSession(t *testing.T) {
	e := newEnv(t, unreachable(t))
	dialed := false
	dial := func(context.Context, string, http.Header, logging.Logger) (*voice.Stream, error) {
		dialed = true
		return nil, errors.New("unexpected")
	}
	p := NewVoicePage(e.api, e.guard, dial, logging.Discard())

	err := p.StreamFile(context.Background(), writeFile(t, "clip.wav", "1234"))
	require.ErrorIs(t, err, ErrRedirected)
	assert.False(t, dialed)
}

func TestVoice_TranscribeFile(t *testing.T) {
	b := newVoiceBackend(t, 0)
	e := newEnv(t, b)
	e.login(t, "a@b.com")
	p := NewVoicePage(e.api, e.guard, nil, logging.Discard())

	require.NoError(t, p.TranscribeFile(context.Background(), writeFile(t, "clip.wav", "RIFF")))
	assert.Equal(t, []string{"You said: learn rust"}, p.Lines())

	b.mu.Lock()
	require.Len(t, b.searches, 1)
	assert.Equal(t, "learn rust", b.searches[0].Query)
	b.mu.Unlock()

	p.Reset()
	assert.Empty(t, p.Lines())
}
