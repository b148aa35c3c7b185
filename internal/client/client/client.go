package client

import (
	"context"
	"io"
)

// API is the backend surface the client pages use. *HTTPClient implements it.
type API interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)

	Profile(ctx context.Context, email string) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) error

	// Search calls /aiinfo instead of /search when ai is set.
	Search(ctx context.Context, req SearchRequest, ai bool) (*SearchResponse, error)
	AIDescription(ctx context.Context, req AIDescriptionRequest) (*DescriptionResponse, error)
	RelatedTopics(ctx context.Context, query string) (*TopicsResponse, error)
	TopicDescription(ctx context.Context, topic string) (*DescriptionResponse, error)
	Recommendations(ctx context.Context, mode string) (*RecommendationsResponse, error)

	RoadmapCategories(ctx context.Context) (*CategoriesResponse, error)
	GenerateRoadmap(ctx context.Context, req RoadmapRequest) (*Roadmap, error)
	StartSession(ctx context.Context, req StartSessionRequest) (*QuizSession, error)
	SubmitAnswers(ctx context.Context, req SubmitAnswersRequest) (*QuizResult, error)
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	UploadPDF(ctx context.Context, filename string, r io.Reader) (*PDFAnalysis, error)
	AskPDF(ctx context.Context, req AskPDFRequest) (*AnswerResponse, error)

	Transcribe(ctx context.Context, filename string, r io.Reader) (*Transcription, error)
	// TranscribeStreamURL is the ws(s) address of the live transcription socket.
	TranscribeStreamURL() string
}
