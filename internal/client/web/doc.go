// Package web serves the browser front end: landing, login, signup and the
// people directory, rendered as HTML with html/template and routed with
// gorilla/mux.
//
// The process holds a single session, so the web front end behaves like a
// locally served desktop app rather than a multi-user site. Every form posts
// and then redirects (POST/redirect/GET); the directory page waits a bounded
// time for an outstanding fetch before rendering.
//
// Routes:
//
//	GET  /                  landing
//	GET  /login             login form
//	POST /login             log in, then /users
//	GET  /signup            signup form
//	POST /signup            register, then /login
//	POST /logout            log out, then /login
//	GET  /users             directory (requires a session)
//	POST /users/prev        previous page
//	POST /users/next        next page
//	POST /users/reload      fetch the current page again
//	POST /users/{id}/open   open the detail panel
//	POST /users/close       close the detail panel
//	GET  /healthz           liveness and session summary as JSON
//	GET  /metrics           Prometheus metrics
package web
