// Package session owns the client's single bearer token.
//
// TokenStore is the persistent slot; Session decodes the token claims for UI
// decisions, drops tokens that are malformed or expired, and hands the token
// to the HTTP client. A Session is built once by the application and passed
// to every page that needs it.
package session
