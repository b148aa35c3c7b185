// Package cli provides the interactive LearnLink command-line client.
//
// It wires configuration, the local database, the session, the HTTP client
// and the page controllers, and drives them from a REPL. Typical flow: log
// in, search, open a result, generate a roadmap and tick off its steps.
//
// Key features:
//   - Login / Register / Logout against the backend's auth endpoints
//   - Search, AI search, live search and recommendations
//   - Result detail with related topics and bookmarks
//   - Profile entries and share links
//   - Roadmaps with progress kept in the local database, quizzes and chat
//   - PDF summaries and questions, voice transcription
//
// The App is also the pages' Navigator: route changes are printed and the
// pages left behind are reset between commands. A background watcher pings
// the backend to show the online/offline state in the prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
