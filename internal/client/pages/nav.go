package pages

// Route is a client location, named after the web client's paths.
type Route string

const (
	RouteLogin         Route = "/login"
	RouteRegister      Route = "/register"
	RouteSearch        Route = "/search"
	RouteSearchResults Route = "/search-results"
	RoutePersonal      Route = "/personal"
	RouteRoadmap       Route = "/roadmap-generation"
	RoutePDF           Route = "/upload-pdf"
	RouteVoice         Route = "/voice-chat"
)

// Navigator changes the current route. Replace drops the current entry from
// history so there is no way back into a stale authenticated view.
type Navigator interface {
	Push(r Route)
	Replace(r Route)
}
