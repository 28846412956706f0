// Package nav names the screens of the application and decides where a
// request for one of them actually lands, given the session state.
package nav

import "sync"

// Destination is a logical screen, spelled as its path.
type Destination string

const (
	Landing   Destination = "/"
	Login     Destination = "/login"
	Signup    Destination = "/signup"
	Directory Destination = "/users"
)

// Known reports whether d is one of the application's screens.
func (d Destination) Known() bool {
	switch d {
	case Landing, Login, Signup, Directory:
		return true
	}
	return false
}

// Protected reports whether d requires an authorized session.
func (d Destination) Protected() bool {
	return d == Directory
}

// Resolve maps a requested destination to the one that should be shown.
// Unknown destinations fall back to Landing; protected ones redirect to
// Login while unauthorized.
func Resolve(d Destination, authorized bool) Destination {
	if !d.Known() {
		return Landing
	}
	if d.Protected() && !authorized {
		return Login
	}
	return d
}

// Redirector receives redirect signals, e.g. from the directory controller
// when it is entered without a session.
type Redirector interface {
	Redirect(to Destination)
}

// RedirectFunc adapts a plain function to Redirector.
type RedirectFunc func(to Destination)

func (f RedirectFunc) Redirect(to Destination) { f(to) }

// Navigator tracks the current screen of an interactive front end.
type Navigator struct {
	mu      sync.Mutex
	current Destination
	history []Destination
}

// NewNavigator starts on Landing.
func NewNavigator() *Navigator {
	return &Navigator{current: Landing}
}

// Go resolves d against the session and moves there. It returns the screen
// actually reached.
func (n *Navigator) Go(d Destination, authorized bool) Destination {
	return n.move(Resolve(d, authorized))
}

// Redirect moves to d unconditionally.
func (n *Navigator) Redirect(to Destination) {
	n.move(to)
}

func (n *Navigator) move(d Destination) Destination {
	n.mu.Lock()
	defer n.mu.Unlock()
	if d != n.current {
		n.history = append(n.history, n.current)
		n.current = d
	}
	return d
}

// Current returns the screen currently shown.
func (n *Navigator) Current() Destination {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// History returns the previously visited screens, oldest first.
func (n *Navigator) History() []Destination {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Destination(nil), n.history...)
}
