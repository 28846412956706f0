package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setup(t *testing.T) (AuthService, *session.Store) {
	t.Helper()
	store := session.NewStore(logging.Discard())
	return NewAuthService(store, logging.Discard()), store
}

func validForm() SignupForm {
	return SignupForm{
		FullName:       "Ann Lee",
		Email:          "a@x.com",
		Username:       "ann",
		Password:       "p1",
		RepeatPassword: "p1",
		TermsAccepted:  true,
	}
}

// ---- TESTS ----

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupForm)
		want   error
		field  string
	}{
		{name: "valid", mutate: func(*SignupForm) {}},
		{name: "terms not accepted", mutate: func(f *SignupForm) { f.TermsAccepted = false }, want: common.ErrTermsNotAccepted},
		{name: "password mismatch", mutate: func(f *SignupForm) { f.RepeatPassword = "p2" }, want: common.ErrPasswordMismatch},
		{name: "empty email", mutate: func(f *SignupForm) { f.Email = "" }, want: common.ErrMissingField, field: "email"},
		{name: "empty passwords", mutate: func(f *SignupForm) { f.Password, f.RepeatPassword = "", "" }, want: common.ErrMissingField, field: "password"},
		{name: "optional fields empty", mutate: func(f *SignupForm) { f.FullName, f.Username = "", "" }},
		{
			name:   "terms reported before mismatch",
			mutate: func(f *SignupForm) { f.TermsAccepted = false; f.RepeatPassword = "x" },
			want:   common.ErrTermsNotAccepted,
		},
		{
			name:   "mismatch reported before missing email",
			mutate: func(f *SignupForm) { f.Email = ""; f.RepeatPassword = "x" },
			want:   common.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := ValidateSignup(f)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			if tt.field != "" {
				var fe *common.FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.field, fe.Field)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	require.NoError(t, ValidateLogin(LoginForm{Email: "a@x.com", Password: "p"}))
	require.ErrorIs(t, ValidateLogin(LoginForm{Password: "p"}), common.ErrMissingField)
	require.ErrorIs(t, ValidateLogin(LoginForm{Email: "a@x.com"}), common.ErrMissingField)
}

func TestSignup_RegistersWithoutLogin(t *testing.T) {
	svc, store := setup(t)

	c, err := svc.Signup(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, "Ann Lee", c.FullName)
	assert.Equal(t, "ann", c.Username)
	assert.Equal(t, 1, store.Len())
	assert.False(t, store.IsAuthorized())
}

func TestSignup_InvalidFormDoesNotTouchStore(t *testing.T) {
	svc, store := setup(t)
	f := validForm()
	f.TermsAccepted = false

	_, err := svc.Signup(context.Background(), f)
	require.ErrorIs(t, err, common.ErrTermsNotAccepted)
	assert.Equal(t, 0, store.Len())
}

func TestSignup_EmailTaken(t *testing.T) {
	svc, store := setup(t)

	_, err := svc.Signup(context.Background(), validForm())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), validForm())
	require.ErrorIs(t, err, common.ErrEmailTaken)
	assert.Equal(t, 1, store.Len())
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, store := setup(t)
	registered, err := svc.Signup(context.Background(), validForm())
	require.NoError(t, err)

	got, err := svc.Login(context.Background(), LoginForm{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, registered, got)
	assert.True(t, store.IsAuthorized())

	cur, ok := svc.CurrentUser(context.Background())
	require.True(t, ok)
	assert.Equal(t, registered.ID, cur.ID)
}

func TestLogin_Failures(t *testing.T) {
	svc, store := setup(t)
	_, err := svc.Signup(context.Background(), validForm())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginForm{Email: "a@x.com"})
	require.ErrorIs(t, err, common.ErrMissingField)

	_, err = svc.Login(context.Background(), LoginForm{Email: "a@x.com", Password: "nope"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.False(t, store.IsAuthorized())
}

func TestLogout(t *testing.T) {
	svc, store := setup(t)
	_, err := svc.Signup(context.Background(), validForm())
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), LoginForm{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	svc.Logout(context.Background())
	assert.False(t, store.IsAuthorized())

	svc.Logout(context.Background())
	assert.False(t, store.IsAuthorized())
	_, ok := svc.CurrentUser(context.Background())
	assert.False(t, ok)
}
