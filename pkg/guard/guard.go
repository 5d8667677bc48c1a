// Package guard decides whether a protected screen may be shown for the
// current authentication state.
package guard

import (
	"net/url"
	"strings"

	"vehicledb/pkg/authstore"
)

const NextParam = "next"

type Decision int

const (
	Render Decision = iota
	Redirect
	Loading
)

type Outcome struct {
	Decision Decision
	// Location is set for Redirect only.
	Location string
}

type StateReader interface {
	State() authstore.State
}

type Guard struct {
	auth      StateReader
	loginPath string
}

func New(auth StateReader, loginPath string) *Guard {
	return &Guard{auth: auth, loginPath: loginPath}
}

// Check never redirects while the state is Unknown, so a pending startup
// check cannot bounce the user to the login screen.
func (g *Guard) Check(location string) Outcome {
	return Decide(g.auth.State(), g.loginPath, location)
}

func Decide(state authstore.State, loginPath, location string) Outcome {
	switch state {
	case authstore.Authenticated:
		return Outcome{Decision: Render}
	case authstore.Anonymous:
		q := url.Values{NextParam: []string{location}}
		return Outcome{Decision: Redirect, Location: loginPath + "?" + q.Encode()}
	default:
		return Outcome{Decision: Loading}
	}
}

// NextLocation returns the location preserved by a redirect, or fallback.
// Only in-app absolute paths are accepted.
func NextLocation(query url.Values, fallback string) string {
	next := query.Get(NextParam)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	return next
}
