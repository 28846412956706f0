package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
)

//go:embed templates/*.html
var templateFS embed.FS

type views struct {
	t *template.Template
}

func parseViews() (*views, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &views{t: t}, nil
}

// formValues echoes non-secret form input back after a failed submit.
type formValues struct {
	FullName      string
	Email         string
	Username      string
	TermsAccepted bool
}

type pageData struct {
	Title   string
	User    *session.Credential
	Error   string
	Notice  string
	Form    formValues
	Page    *directoryview.Snapshot
	Refresh bool
}

// render executes the named template into a buffer first so a template
// failure turns into a clean 500.
func (r *Router) render(w http.ResponseWriter, status int, name string, data pageData) {
	if u, ok := r.store.CurrentUser(); ok {
		data.User = &u
	}

	var buf bytes.Buffer
	if err := r.views.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error(context.Background(), "render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// userMessage turns a form or session error into the text shown inline.
func userMessage(err error) string {
	var fe *common.FieldError
	switch {
	case errors.As(err, &fe):
		return fmt.Sprintf("Please fill in %s.", fe.Field)
	case errors.Is(err, common.ErrTermsNotAccepted):
		return "Please accept the terms of use."
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, common.ErrEmailTaken):
		return "This email is already registered."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	default:
		return "Something went wrong, please try again."
	}
}

// formStatus picks the response code for a rejected form.
func formStatus(err error) int {
	if errors.Is(err, common.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	return http.StatusUnprocessableEntity
}
