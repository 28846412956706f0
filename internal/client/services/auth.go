// Package services contains application services for the userdir front ends.
// This file defines the authentication service: signup and login form
// validation in front of the session store, plus logout.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// SignupForm carries the raw values of the signup screen.
type SignupForm struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	RepeatPassword string
	TermsAccepted  bool
}

// LoginForm carries the raw values of the login screen.
type LoginForm struct {
	Email    string
	Password string
}

// AuthService defines authentication operations for the front ends.
//
// Contract:
//   - Signup: validate the form, then register the credential. Does not log in.
//   - Login: validate the form, then authenticate against the store.
//   - Logout: clear the session; always succeeds.
//   - CurrentUser: the active user, if any.
//
// Validation errors are returned before the store is touched.
type AuthService interface {
	Signup(ctx context.Context, form SignupForm) (session.Credential, error)
	Login(ctx context.Context, form LoginForm) (session.Credential, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (session.Credential, bool)
}

// authService is the concrete AuthService backed by the shared session store.
type authService struct {
	store  *session.Store
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given store.
func NewAuthService(store *session.Store, logger logging.Logger) AuthService {
	return &authService{store: store, logger: logger}
}

// ValidateSignup checks the form in the order the signup screen reports
// problems: terms, password confirmation, required fields.
func ValidateSignup(form SignupForm) error {
	if !form.TermsAccepted {
		return common.ErrTermsNotAccepted
	}
	if form.Password != form.RepeatPassword {
		return common.ErrPasswordMismatch
	}
	if form.Email == "" {
		return common.MissingField("email")
	}
	if form.Password == "" {
		return common.MissingField("password")
	}
	return nil
}

// ValidateLogin checks that both credentials were entered.
func ValidateLogin(form LoginForm) error {
	if form.Email == "" {
		return common.MissingField("email")
	}
	if form.Password == "" {
		return common.MissingField("password")
	}
	return nil
}

// Signup registers a new credential. An email that is already registered is
// rejected with common.ErrEmailTaken.
func (a *authService) Signup(ctx context.Context, form SignupForm) (session.Credential, error) {
	if err := ValidateSignup(form); err != nil {
		a.logger.Debug(ctx, "signup form rejected", "error", err)
		return session.Credential{}, err
	}
	if _, taken := a.store.Lookup(form.Email); taken {
		a.logger.Debug(ctx, "signup form rejected", "error", common.ErrEmailTaken)
		return session.Credential{}, common.ErrEmailTaken
	}

	c := a.store.Signup(session.Credential{
		FullName: form.FullName,
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
	})
	return c, nil
}

// Login authenticates the form's credentials. On failure the session is left
// untouched.
func (a *authService) Login(ctx context.Context, form LoginForm) (session.Credential, error) {
	if err := ValidateLogin(form); err != nil {
		return session.Credential{}, err
	}
	c, err := a.store.Login(form.Email, form.Password)
	if err != nil {
		return session.Credential{}, fmt.Errorf("login: %w", err)
	}
	return c, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.store.Logout()
}

func (a *authService) CurrentUser(ctx context.Context) (session.Credential, bool) {
	return a.store.CurrentUser()
}
