// Package pages holds one controller per client route.
//
// Every guarded operation goes through the same lifecycle: the session is
// checked first; without a user the page replaces the route with /login and
// issues no request; otherwise the backend is called and the page's View
// ends up either rendering data or showing a user-readable error. A 401
// clears the stored token and redirects like a missing session. Nothing is
// retried or polled; each fetch is triggered by a user action.
package pages
