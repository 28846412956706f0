package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/gorilla/mux"
)

func (r *Router) handleLanding(w http.ResponseWriter, req *http.Request) {
	r.navigator.Go(nav.Landing, r.store.IsAuthorized())
	r.render(w, http.StatusOK, "landing", pageData{Title: "Welcome"})
}

func (r *Router) handleLoginForm(w http.ResponseWriter, req *http.Request) {
	r.navigator.Go(nav.Login, r.store.IsAuthorized())

	data := pageData{Title: "Log in"}
	if req.URL.Query().Get("created") != "" {
		data.Notice = "Account created. Please log in."
	}
	r.render(w, http.StatusOK, "login", data)
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		r.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	form := services.LoginForm{
		Email:    req.PostFormValue("email"),
		Password: req.PostFormValue("password"),
	}

	if _, err := r.auth.Login(req.Context(), form); err != nil {
		r.render(w, formStatus(err), "login", pageData{
			Title: "Log in",
			Error: userMessage(err),
			Form:  formValues{Email: form.Email},
		})
		return
	}
	r.redirectTo(w, req, nav.Directory)
}

func (r *Router) handleSignupForm(w http.ResponseWriter, req *http.Request) {
	r.navigator.Go(nav.Signup, r.store.IsAuthorized())
	r.render(w, http.StatusOK, "signup", pageData{Title: "Sign up"})
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		r.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	form := services.SignupForm{
		FullName:       req.PostFormValue("full_name"),
		Email:          req.PostFormValue("email"),
		Username:       req.PostFormValue("username"),
		Password:       req.PostFormValue("password"),
		RepeatPassword: req.PostFormValue("repeat_password"),
		TermsAccepted:  req.PostFormValue("terms") != "",
	}

	if _, err := r.auth.Signup(req.Context(), form); err != nil {
		r.render(w, formStatus(err), "signup", pageData{
			Title: "Sign up",
			Error: userMessage(err),
			Form: formValues{
				FullName:      form.FullName,
				Email:         form.Email,
				Username:      form.Username,
				TermsAccepted: form.TermsAccepted,
			},
		})
		return
	}

	r.navigator.Go(nav.Login, r.store.IsAuthorized())
	http.Redirect(w, req, string(nav.Login)+"?created=1", http.StatusSeeOther)
}

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	r.auth.Logout(req.Context())
	r.redirectTo(w, req, nav.Login)
}

func (r *Router) handleUsers(w http.ResponseWriter, req *http.Request) {
	if r.navigator.Go(nav.Directory, r.store.IsAuthorized()) != nav.Directory {
		http.Redirect(w, req, string(nav.Login), http.StatusSeeOther)
		return
	}
	if err := r.directory.Activate(r.base); err != nil {
		r.redirectTo(w, req, nav.Login)
		return
	}

	r.waitSettled(req.Context())
	snap := r.directory.Snapshot()
	if snap.State == directoryview.StateUnauthorized {
		r.redirectTo(w, req, nav.Login)
		return
	}

	r.render(w, http.StatusOK, "users", pageData{
		Title:   "Directory",
		Page:    &snap,
		Refresh: snap.State == directoryview.StateLoadingPage,
	})
}

func (r *Router) handleTurnPage(direction int) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.afterAction(w, req, r.directory.TurnPage(direction))
	}
}

func (r *Router) handleReload(w http.ResponseWriter, req *http.Request) {
	r.afterAction(w, req, r.directory.Reload())
}

func (r *Router) handleDismiss(w http.ResponseWriter, req *http.Request) {
	r.afterAction(w, req, r.directory.Dismiss())
}

func (r *Router) handleOpen(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(mux.Vars(req)["id"])
	if err != nil {
		r.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	_, err = r.directory.SelectByID(id)
	if errors.Is(err, directoryview.ErrNoSuchRecord) {
		r.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	r.afterAction(w, req, err)
}

// afterAction finishes a directory POST by redirecting back to the listing.
// A controller that has not been entered yet, or whose session ended, is
// sent through /users so the usual gate applies.
func (r *Router) afterAction(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case err == nil, errors.Is(err, common.ErrUnauthorized):
		r.redirectTo(w, req, nav.Directory)
	default:
		r.writeError(w, http.StatusBadRequest, err.Error())
	}
}

// waitSettled gives an outstanding fetch up to renderWait to land.
func (r *Router) waitSettled(ctx context.Context) {
	if r.renderWait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.renderWait)
	defer cancel()
	if err := r.directory.Wait(ctx); err != nil {
		r.logger.Debug(ctx, "rendering before page settled", "error", err)
	}
}
