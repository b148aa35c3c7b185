package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/learnlink/learnlink/internal/common"
	"github.com/learnlink/learnlink/internal/logging"
	"golang.org/x/time/rate"
)

// TokenSource hands out the current bearer token ("" when logged out).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

const (
	defaultBaseURL           = "http://localhost:8000"
	defaultUserAgent         = "learnlink-cli/0.1"
	defaultRequestTimeout    = 30 * time.Second
	defaultGenerationTimeout = 100 * time.Second
	maxErrorBody             = 64 << 10
)

type Options struct {
	BaseURL string
	// RequestTimeout bounds ordinary calls, GenerationTimeout the slow AI ones.
	RequestTimeout    time.Duration
	GenerationTimeout time.Duration
	// RequestsPerSecond <= 0 disables pacing.
	RequestsPerSecond float64
	Tokens            TokenSource
	Logger            logging.Logger
	// HTTP defaults to a fresh http.Client without its own timeout.
	HTTP *http.Client
}

// HTTPClient talks to the LearnLink backend over HTTP/JSON.
type HTTPClient struct {
	baseURL           *url.URL
	http              *http.Client
	tokens            TokenSource
	limiter           *rate.Limiter
	log               logging.Logger
	userAgent         string
	requestTimeout    time.Duration
	generationTimeout time.Duration
}

var _ API = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	c := &HTTPClient{
		baseURL:           base,
		http:              opts.HTTP,
		tokens:            opts.Tokens,
		limiter:           rate.NewLimiter(rate.Inf, 1),
		log:               opts.Logger.With("component", "http"),
		userAgent:         defaultUserAgent,
		requestTimeout:    opts.RequestTimeout,
		generationTimeout: opts.GenerationTimeout,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = defaultRequestTimeout
	}
	if c.generationTimeout <= 0 {
		c.generationTimeout = defaultGenerationTimeout
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c, nil
}

// BaseURL returns the normalized backend address.
func (c *HTTPClient) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// request describes one backend call.
type request struct {
	method string
	path   string
	// escapedPath overrides the wire form of path when it holds user input.
	escapedPath string
	query       url.Values
	body        any
	// file, when set, is sent as a multipart form instead of body.
	file *filePart
	// auth attaches the bearer header and fails fast without a token.
	auth bool
	// slow selects the generation timeout.
	slow bool
}

func (c *HTTPClient) do(ctx context.Context, r request, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var bearer string
	if r.auth {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if tok == "" {
			return fmt.Errorf("%s %s: %w", r.method, r.path, ErrUnauthorized)
		}
		bearer = tok
	}

	timeout := c.requestTimeout
	if r.slow {
		timeout = c.generationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.mapTransportError(ctx, r, err)
	}

	body, contentType, err := r.encode()
	if err != nil {
		return err
	}

	rel := &url.URL{Path: r.path, RawPath: r.escapedPath}
	if len(r.query) > 0 {
		rel.RawQuery = r.query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL.String(), body)
	if err != nil {
		if cl, ok := body.(io.Closer); ok {
			_ = cl.Close()
		}
		return fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		return c.mapTransportError(ctx, r, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug(ctx, "request finished",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: r.path, Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctx.Err() != nil {
			return c.mapTransportError(ctx, r, err)
		}
		return fmt.Errorf("decode %s response: %w", r.path, err)
	}
	return nil
}

func (r request) encode() (io.Reader, string, error) {
	if r.file != nil {
		body, contentType := r.file.stream()
		return body, contentType, nil
	}
	if r.body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(r.body)
	if err != nil {
		return nil, "", fmt.Errorf("encode %s request: %w", r.path, err)
	}
	return bytes.NewReader(b), "application/json", nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, r request, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%s %s: %w", r.method, r.path, context.Canceled)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%s %s: %w", r.method, r.path, ErrTimeout)
	default:
		return fmt.Errorf("%s %s: %w: %v", r.method, r.path, ErrUnavailable, err)
	}
}

// readDetail pulls the "detail" field out of an error body. FastAPI sends
// either a string or a list of validation errors.
func readDetail(body io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(b, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, e := range list {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(payload.Detail)
}

type filePart struct {
	field    string
	filename string
	src      io.Reader
}

// stream writes the form through a pipe so large files are never buffered
// whole. The transport closes the reader, which unblocks the writer.
func (f *filePart) stream() (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(f.field, f.filename)
		if err == nil {
			_, err = io.Copy(part, f.src)
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()
	return pr, mw.FormDataContentType()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url %q: unsupported scheme %q", raw, u.Scheme)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// websocketURL maps the base URL onto ws(s) for path.
func (c *HTTPClient) websocketURL(path string) string {
	u := c.BaseURL()
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = path
	return u.String()
}
