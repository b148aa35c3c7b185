package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/api/message"}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Profile(ctx context.Context, email string) (*Profile, error) {
	var out Profile
	r := request{
		method:      http.MethodGet,
		path:        "/personal/" + email,
		escapedPath: "/personal/" + url.PathEscape(email),
		auth:        true,
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SaveProfile(ctx context.Context, p *Profile) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/personal/save", body: p, auth: true}, nil)
}

func (c *HTTPClient) Search(ctx context.Context, req SearchRequest, ai bool) (*SearchResponse, error) {
	path := "/search"
	if ai {
		path = "/aiinfo"
	}
	var out SearchResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: req, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AIDescription(ctx context.Context, req AIDescriptionRequest) (*DescriptionResponse, error) {
	var out DescriptionResponse
	r := request{method: http.MethodPost, path: "/ai-description", body: req, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RelatedTopics(ctx context.Context, query string) (*TopicsResponse, error) {
	var out TopicsResponse
	body := map[string]string{"user_query": query}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/related-topics", body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) TopicDescription(ctx context.Context, topic string) (*DescriptionResponse, error) {
	var out DescriptionResponse
	body := map[string]string{"topic": topic}
	r := request{method: http.MethodPost, path: "/topic-description", body: body, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Recommendations(ctx context.Context, mode string) (*RecommendationsResponse, error) {
	r := request{method: http.MethodGet, path: "/recommendations", auth: true}
	if mode = strings.TrimSpace(mode); mode != "" {
		r.query = url.Values{"mode": []string{mode}}
	}
	var out RecommendationsResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RoadmapCategories(ctx context.Context) (*CategoriesResponse, error) {
	var out CategoriesResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/roadmap/categories", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GenerateRoadmap(ctx context.Context, req RoadmapRequest) (*Roadmap, error) {
	var out Roadmap
	r := request{method: http.MethodPost, path: "/roadmap/generate", body: req, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) StartSession(ctx context.Context, req StartSessionRequest) (*QuizSession, error) {
	var out QuizSession
	r := request{method: http.MethodPost, path: "/start_session", body: req, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SubmitAnswers(ctx context.Context, req SubmitAnswersRequest) (*QuizResult, error) {
	var out QuizResult
	r := request{method: http.MethodPost, path: "/submit_answers", body: req, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	r := request{method: http.MethodPost, path: "/chat", body: req, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UploadPDF(ctx context.Context, filename string, src io.Reader) (*PDFAnalysis, error) {
	var out PDFAnalysis
	r := request{
		method: http.MethodPost,
		path:   "/upload-pdf/",
		file:   &filePart{field: "file", filename: filename, src: src},
		auth:   true,
		slow:   true,
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AskPDF(ctx context.Context, req AskPDFRequest) (*AnswerResponse, error) {
	var out AnswerResponse
	r := request{method: http.MethodPost, path: "/ask-pdf/", body: req, auth: true, slow: true}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Transcribe(ctx context.Context, filename string, src io.Reader) (*Transcription, error) {
	var out Transcription
	r := request{
		method: http.MethodPost,
		path:   "/transcribe",
		file:   &filePart{field: "file", filename: filename, src: src},
		auth:   true,
		slow:   true,
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) TranscribeStreamURL() string {
	return c.websocketURL("/ws/transcribe")
}
