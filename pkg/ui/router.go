package ui

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// Route is a matched screen with its path variables and query.
type Route struct {
	Name      string
	Protected bool
	Vars      map[string]string
	Query     url.Values
	Location  string
	screen    Screen
}

type screenEntry struct {
	screen    Screen
	protected bool
}

// Router maps in-app locations to screens. Matching is done by gorilla/mux
// against a synthetic GET request, so path templates like
// /vehicles/{vehicleId}/delete work the same way as on the server.
type Router struct {
	mux     *mux.Router
	screens map[string]screenEntry
}

func NewRouter() *Router {
	return &Router{
		mux:     mux.NewRouter(),
		screens: make(map[string]screenEntry),
	}
}

func (r *Router) Public(name, path string, s Screen) {
	r.add(name, path, s, false)
}

func (r *Router) Protected(name, path string, s Screen) {
	r.add(name, path, s, true)
}

func (r *Router) add(name, path string, s Screen, protected bool) {
	r.mux.Path(path).Methods(http.MethodGet).Name(name)
	r.screens[name] = screenEntry{screen: s, protected: protected}
}

func (r *Router) Match(location string) (*Route, bool) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, false
	}
	req := &http.Request{Method: http.MethodGet, URL: u}

	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.MatchErr != nil || m.Route == nil {
		return nil, false
	}
	entry, ok := r.screens[m.Route.GetName()]
	if !ok {
		return nil, false
	}

	return &Route{
		Name:      m.Route.GetName(),
		Protected: entry.protected,
		Vars:      m.Vars,
		Query:     u.Query(),
		Location:  location,
		screen:    entry.screen,
	}, true
}
