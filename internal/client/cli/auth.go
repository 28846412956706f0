package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/services"
)

// getSimpleText, getPassword and getConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirm = GetConfirm

// Signup walks the user through the signup form and registers the account.
// It does not log in; on success the user is sent to the login screen.
func (a *App) Signup(ctx context.Context) error {
	a.navigator.Go(nav.Signup, a.store.IsAuthorized())

	var form services.SignupForm
	var err error

	if form.FullName, err = getSimpleText(a.reader, "Full name (optional)", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if form.Username, err = getSimpleText(a.reader, "Username (optional)", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword("Password", a.out); err != nil {
		return err
	}
	if form.RepeatPassword, err = getPassword("Repeat password", a.out); err != nil {
		return err
	}
	if form.TermsAccepted, err = getConfirm(a.reader, "Do you accept the terms of use?", a.out); err != nil {
		return err
	}

	if _, err := a.authService.Signup(ctx, form); err != nil {
		return err
	}

	a.navigator.Go(nav.Login, a.store.IsAuthorized())
	fmt.Fprintln(a.out, "Account created. Type 'login' to sign in.")
	return nil
}

// Login prompts for credentials and opens a session. On success the
// directory is shown straight away.
func (a *App) Login(ctx context.Context) error {
	a.navigator.Go(nav.Login, a.store.IsAuthorized())

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, services.LoginForm{Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	return a.Users(ctx)
}

// Logout ends the session. It is safe to call when nobody is logged in.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.navigator.Go(nav.Login, false)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the logged-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.authService.CurrentUser(ctx)
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName(), u.Email)
	return nil
}
