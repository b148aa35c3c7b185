package cli

import (
	"github.com/learnlink/learnlink/internal/client/pages"
)

var _ pages.Navigator = (*App)(nil)

// Push moves to r. Pages may call it from any goroutine, including while
// holding their own locks, so it only records the change; resetting the
// page that was left happens in settle.
func (a *App) Push(r pages.Route) {
	a.navigate(r)
}

// Replace behaves like Push; the REPL keeps no history to go back through.
func (a *App) Replace(r pages.Route) {
	a.navigate(r)
}

func (a *App) navigate(r pages.Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.route == r {
		return
	}
	a.left = append(a.left, a.route)
	a.route = r
}

func (a *App) currentRoute() pages.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// enter navigates to the page a command belongs to.
func (a *App) enter(r pages.Route) {
	a.navigate(r)
	a.settle()
}

// settle resets the pages navigated away from and announces the new route.
// The REPL calls it between commands. Search results are kept while one of
// them is open and dropped together with it.
func (a *App) settle() {
	a.mu.Lock()
	left := a.left
	a.left = nil
	to := a.route
	a.mu.Unlock()

	if len(left) == 0 {
		return
	}
	for _, from := range left {
		switch {
		case from == to:
		case from == pages.RouteSearch && to == pages.RouteSearchResults:
			// results stay for going back to the list
		case from == pages.RouteSearchResults && to != pages.RouteSearch:
			a.resetPage(from)
			a.resetPage(pages.RouteSearch)
		default:
			a.resetPage(from)
		}
	}
	if to == pages.RouteLogin {
		a.resetAll()
	}
	printlnFn(a.render.Muted("-> " + string(to)))
}

func (a *App) resetPage(r pages.Route) {
	switch r {
	case pages.RouteSearch:
		a.search.Reset()
	case pages.RouteSearchResults:
		a.result.Reset()
	case pages.RoutePersonal:
		a.profile.Reset()
	case pages.RouteRoadmap:
		a.roadmap.Reset()
	case pages.RoutePDF:
		a.pdf.Reset()
	case pages.RouteVoice:
		a.voice.Reset()
	}
}

func (a *App) resetAll() {
	for _, r := range []pages.Route{
		pages.RouteSearch, pages.RouteSearchResults, pages.RoutePersonal,
		pages.RouteRoadmap, pages.RoutePDF, pages.RouteVoice,
	} {
		a.resetPage(r)
	}
}
