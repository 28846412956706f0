package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the process-wide objects the router serves.
type Deps struct {
	Store     *session.Store
	Auth      services.AuthService
	Directory *directoryview.Controller
	Navigator *nav.Navigator
	Logger    logging.Logger

	// Registerer receives the HTTP metrics and Gatherer backs /metrics.
	// Both may be the same *prometheus.Registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// RenderWait bounds how long GET /users waits for an outstanding fetch.
	RenderWait time.Duration
}

// Router exposes the HTTP endpoints of the web front end.
type Router struct {
	mux        *mux.Router
	base       context.Context
	store      *session.Store
	auth       services.AuthService
	directory  *directoryview.Controller
	navigator  *nav.Navigator
	logger     logging.Logger
	views      *views
	metrics    *httpMetrics
	gatherer   prometheus.Gatherer
	renderWait time.Duration
}

// NewRouter creates the router and registers its handlers. base bounds the
// directory fetches started on behalf of requests; it should live as long as
// the server.
func NewRouter(base context.Context, d Deps) (*Router, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	if d.Navigator == nil {
		d.Navigator = nav.NewNavigator()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	r := &Router{
		mux:        mux.NewRouter(),
		base:       base,
		store:      d.Store,
		auth:       d.Auth,
		directory:  d.Directory,
		navigator:  d.Navigator,
		logger:     d.Logger.With("component", "web"),
		views:      v,
		metrics:    newHTTPMetrics(d.Registerer),
		gatherer:   d.Gatherer,
		renderWait: d.RenderWait,
	}
	r.routes()
	return r, nil
}

// ServeHTTP satisfies http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) routes() {
	r.mux.Use(r.metrics.instrument)

	r.mux.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.mux.HandleFunc("/healthz", r.handleHealth).Methods(http.MethodGet)

	r.mux.HandleFunc("/", r.handleLanding).Methods(http.MethodGet)
	r.mux.HandleFunc("/login", r.handleLoginForm).Methods(http.MethodGet)
	r.mux.HandleFunc("/login", r.handleLogin).Methods(http.MethodPost)
	r.mux.HandleFunc("/signup", r.handleSignupForm).Methods(http.MethodGet)
	r.mux.HandleFunc("/signup", r.handleSignup).Methods(http.MethodPost)
	r.mux.HandleFunc("/logout", r.handleLogout).Methods(http.MethodPost)

	r.mux.HandleFunc("/users", r.handleUsers).Methods(http.MethodGet)
	r.mux.HandleFunc("/users/prev", r.handleTurnPage(-1)).Methods(http.MethodPost)
	r.mux.HandleFunc("/users/next", r.handleTurnPage(1)).Methods(http.MethodPost)
	r.mux.HandleFunc("/users/reload", r.handleReload).Methods(http.MethodPost)
	r.mux.HandleFunc("/users/close", r.handleDismiss).Methods(http.MethodPost)
	r.mux.HandleFunc("/users/{id:[0-9]+}/open", r.handleOpen).Methods(http.MethodPost)

	r.mux.NotFoundHandler = r.metrics.instrument(http.HandlerFunc(r.handleUnknown))
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	snap := r.directory.Snapshot()
	r.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"authorized": r.store.IsAuthorized(),
		"directory": map[string]any{
			"state": snap.State,
			"page":  snap.PageIndex,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// handleUnknown sends unknown paths to the landing page.
func (r *Router) handleUnknown(w http.ResponseWriter, req *http.Request) {
	r.redirectTo(w, req, nav.Destination(req.URL.Path))
}

// redirectTo resolves d against the session and redirects there with 303.
func (r *Router) redirectTo(w http.ResponseWriter, req *http.Request, d nav.Destination) {
	to := r.navigator.Go(d, r.store.IsAuthorized())
	http.Redirect(w, req, string(to), http.StatusSeeOther)
}

func (r *Router) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.logger.Error(context.Background(), "failed to encode response", "error", err)
	}
}

func (r *Router) writeError(w http.ResponseWriter, status int, msg string) {
	r.writeJSON(w, status, map[string]string{"error": msg})
}
