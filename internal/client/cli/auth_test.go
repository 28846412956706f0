package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/directory"
	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory serves twelve generated people per page and fails pages
// listed in failSkips.
type fakeDirectory struct {
	mu        sync.Mutex
	failSkips map[int]bool
	skips     []int
}

func (f *fakeDirectory) FetchPage(_ context.Context, limit, skip int) (directory.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skips = append(f.skips, skip)
	if f.failSkips[skip] {
		return directory.Page{}, fmt.Errorf("%w: status 503", common.ErrFetchFailed)
	}
	users := make([]directory.Person, 0, limit)
	for i := 1; i <= limit; i++ {
		id := skip + i
		users = append(users, directory.Person{
			ID: id, FirstName: fmt.Sprintf("First%d", id), LastName: "Last",
			Email: fmt.Sprintf("p%d@x.com", id), Age: 20 + i,
		})
	}
	return directory.Page{Users: users, Skip: skip, Limit: limit, Total: 208}, nil
}

func (f *fakeDirectory) setFail(skip int, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSkips == nil {
		f.failSkips = map[int]bool{}
	}
	f.failSkips[skip] = fail
}

func (f *fakeDirectory) Skips() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.skips...)
}

func newTestApp(t *testing.T) (*App, *fakeDirectory, *bytes.Buffer) {
	t.Helper()
	store := session.NewStore(logging.Discard())
	navigator := nav.NewNavigator()
	dir := &fakeDirectory{}
	ctrl := directoryview.New(store, dir, logging.Discard(), directoryview.WithRedirector(navigator))
	t.Cleanup(ctrl.Close)

	out := &bytes.Buffer{}
	return &App{
		config:      &config.Config{RenderWait: 2 * time.Second},
		store:       store,
		authService: services.NewAuthService(store, logging.Discard()),
		directory:   ctrl,
		navigator:   navigator,
		logger:      logging.Discard(),
		reader:      rdr(""),
		out:         out,
	}, dir, out
}

// stubInputs answers text prompts and password prompts from queues.
func stubInputs(t *testing.T, texts []string, passwords []string, confirm bool) {
	t.Helper()
	origST, origGP, origGC := getSimpleText, getPassword, getConfirm
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ string, _ io.Writer) (string, error) {
		if len(passwords) == 0 {
			return "", io.EOF
		}
		s := passwords[0]
		passwords = passwords[1:]
		return s, nil
	}
	getConfirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return confirm, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		getConfirm = origGC
	})
}

func loginAs(t *testing.T, a *App, email, password string) {
	t.Helper()
	a.store.Signup(session.Credential{FullName: "Ada Lovelace", Email: email, Password: password})
	stubInputs(t, []string{email}, []string{password}, false)
	require.NoError(t, a.Login(context.Background()))
}

func TestSignup_Success(t *testing.T) {
	a, _, out := newTestApp(t)
	stubInputs(t, []string{"Ada Lovelace", "a@x.com", "ada"}, []string{"p1", "p1"}, true)

	require.NoError(t, a.Signup(context.Background()))

	c, ok := a.store.Lookup("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", c.FullName)
	assert.Equal(t, "ada", c.Username)
	assert.False(t, a.store.IsAuthorized(), "signup does not log in")
	assert.Equal(t, nav.Login, a.navigator.Current())
	assert.Contains(t, out.String(), "Account created")
}

func TestSignup_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		texts     []string
		passwords []string
		terms     bool
		want      error
	}{
		{
			name:      "terms not accepted",
			texts:     []string{"", "a@x.com", ""},
			passwords: []string{"p1", "p1"},
			terms:     false,
			want:      common.ErrTermsNotAccepted,
		},
		{
			name:      "passwords differ",
			texts:     []string{"", "a@x.com", ""},
			passwords: []string{"p1", "p2"},
			terms:     true,
			want:      common.ErrPasswordMismatch,
		},
		{
			name:      "email missing",
			texts:     []string{"", "", ""},
			passwords: []string{"p1", "p1"},
			terms:     true,
			want:      common.ErrMissingField,
		},
		{
			name:      "prompt aborted",
			texts:     []string{"Ada"},
			passwords: nil,
			terms:     true,
			want:      io.EOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t)
			stubInputs(t, tt.texts, tt.passwords, tt.terms)

			err := a.Signup(context.Background())
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, a.store.Len())
			assert.Equal(t, nav.Signup, a.navigator.Current())
		})
	}
}

func TestLogin_ShowsFirstPage(t *testing.T) {
	a, dir, out := newTestApp(t)
	loginAs(t, a, "a@x.com", "p1")

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, nav.Directory, a.navigator.Current())
	assert.Equal(t, []int{0}, dir.Skips())
	assert.Contains(t, out.String(), "Welcome, Ada Lovelace!")
	assert.Contains(t, out.String(), "Page 1")
	assert.Contains(t, out.String(), "First12 Last")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	a, dir, _ := newTestApp(t)
	a.store.Signup(session.Credential{Email: "a@x.com", Password: "p1"})
	stubInputs(t, []string{"a@x.com"}, []string{"nope"}, false)

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, nav.Login, a.navigator.Current())
	assert.Empty(t, dir.Skips())
}

func TestLogout(t *testing.T) {
	a, _, out := newTestApp(t)
	loginAs(t, a, "a@x.com", "p1")

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, nav.Login, a.navigator.Current())
	assert.Equal(t, directoryview.StateUnauthorized, a.directory.Snapshot().State)
	assert.Contains(t, out.String(), "Logged out.")

	require.NoError(t, a.Logout(context.Background()), "logout twice is fine")
}

func TestWhoAmI(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Not logged in.")

	loginAs(t, a, "a@x.com", "p1")
	out.Reset()
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "Ada Lovelace <a@x.com>\n", out.String())
}
