// Package common contains constants shared by the LearnLink client packages.
package common

const (
	// AuthHeaderName carries the bearer credential on guarded calls.
	AuthHeaderName = "Authorization"
	// BearerPrefix precedes the token inside AuthHeaderName.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName tags each outbound request for backend log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// TokenKey is the single local storage slot holding the session token.
	TokenKey = "auth_token"
	// ProgressKeyPrefix is followed by the roadmap domain name.
	ProgressKeyPrefix = "roadmap_progress_"
)
