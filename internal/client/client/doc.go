// Package client contains the LearnLink backend client and the local
// database bootstrap.
//
// # Overview
//
//  1. API is the backend contract used by the pages: auth, profile, search,
//     result details, roadmap and quiz, PDF analysis and transcription.
//  2. HTTPClient implements API over HTTP/JSON. Guarded calls carry
//     "Authorization: Bearer <token>" from a TokenSource and fail with
//     ErrUnauthorized without touching the network when no token is stored.
//     Requests are paced by a token bucket and tagged with X-Request-ID.
//  3. InitDatabase and RunMigrations open the local SQLite file and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnauthorized (401 or no token), ErrUnavailable (transport failure) and
// ErrTimeout (deadline exceeded). Non-2xx answers are *StatusError carrying
// the backend's "detail" message; a 401 one also matches ErrUnauthorized.
// Nothing is retried.
//
// # Timeouts
//
// Every call gets Options.RequestTimeout; roadmap generation, quiz, chat,
// PDF and transcription calls get Options.GenerationTimeout instead.
package client
