package directoryview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/directory"
	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// PageSize is the number of people requested per page.
const PageSize = 12

// ErrNoSuchRecord is returned when selecting a record that is not on the
// current page.
var ErrNoSuchRecord = errors.New("no such record on this page")

type State string

const (
	StateUnauthorized State = "unauthorized"
	StateLoadingPage  State = "loading"
	StatePageReady    State = "ready"
	StateFetchFailed  State = "failed"
)

// Snapshot is a copy of the controller's view state.
type Snapshot struct {
	State     State
	PageIndex int
	Records   []directory.Person
	Selected  *directory.Person
	// Err is the error of the last failed fetch while State is FetchFailed.
	Err error
	// LastPage is set when the current page came back short, which means
	// there is most likely nothing further. Moving forward is still allowed.
	LastPage bool
}

// DetailOpen reports whether the detail panel is shown.
func (s Snapshot) DetailOpen() bool {
	return s.Selected != nil
}

// Offset returns the skip value for a 1-based page index.
func Offset(pageIndex int) int {
	return (pageIndex - 1) * PageSize
}

type Controller struct {
	store    *session.Store
	fetcher  directory.Fetcher
	redirect nav.Redirector
	metrics  *directory.Metrics
	logger   logging.Logger

	mu          sync.Mutex
	active      bool
	base        context.Context
	cancelBase  context.CancelFunc
	unsubscribe func()

	state     State
	pageIndex int
	records   []directory.Person
	selected  *directory.Person
	lastErr   error

	// seq identifies the latest requested fetch; completions carrying an
	// older value are dropped.
	seq         uint64
	cancelFetch context.CancelFunc
	// settled is closed once the latest fetch has been applied or dropped.
	settled chan struct{}
}

// Option customises a Controller.
type Option func(*Controller)

// WithRedirector sets where redirect signals go.
func WithRedirector(r nav.Redirector) Option {
	return func(c *Controller) {
		if r != nil {
			c.redirect = r
		}
	}
}

// WithMetrics counts responses dropped for superseded requests.
func WithMetrics(m *directory.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New returns an inactive controller. Call Activate to start it.
func New(store *session.Store, fetcher directory.Fetcher, logger logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		fetcher:   fetcher,
		redirect:  nav.RedirectFunc(func(nav.Destination) {}),
		logger:    logger.With("component", "directoryview"),
		state:     StateUnauthorized,
		pageIndex: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate subscribes the controller to the session store and applies the
// current authorization state. Without a session it enters Unauthorized,
// signals a redirect to the login screen and returns common.ErrUnauthorized.
// With one it starts loading page 1 unless it is already running.
//
// ctx bounds every fetch issued until Close. Activate is idempotent.
func (c *Controller) Activate(ctx context.Context) error {
	c.mu.Lock()
	if !c.active {
		c.active = true
		c.base, c.cancelBase = context.WithCancel(ctx)
		c.mu.Unlock()

		unsubscribe := c.store.Subscribe(c.onSession)

		c.mu.Lock()
		c.unsubscribe = unsubscribe
	}
	c.mu.Unlock()

	if !c.store.IsAuthorized() {
		c.enterUnauthorized()
		return common.ErrUnauthorized
	}

	c.mu.Lock()
	if c.state == StateUnauthorized {
		c.resetLocked()
		c.loadLocked(1)
	}
	c.mu.Unlock()
	return nil
}

// Close detaches the controller from the store and cancels outstanding work.
func (c *Controller) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	if c.cancelBase != nil {
		c.cancelBase()
	}
	c.invalidateLocked()
	c.active = false
	c.state = StateUnauthorized
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *Controller) onSession(st session.State) {
	if !st.Authorized {
		c.enterUnauthorized()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.logger.Info(c.base, "session started, loading first page", "session_id", st.ID)
	c.resetLocked()
	c.loadLocked(1)
}

func (c *Controller) enterUnauthorized() {
	c.mu.Lock()
	wasRunning := c.state != StateUnauthorized
	c.invalidateLocked()
	c.resetLocked()
	c.state = StateUnauthorized
	c.mu.Unlock()

	if wasRunning {
		c.logger.Info(context.Background(), "session ended, directory closed")
	}
	c.redirect.Redirect(nav.Login)
}

// TurnPage moves one page back (-1) or forward (+1) and loads it. Moving
// back from page 1 does nothing. There is no upper bound.
func (c *Controller) TurnPage(direction int) error {
	if direction != -1 && direction != 1 {
		return common.ErrInvalidDirection
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnauthorized {
		return common.ErrUnauthorized
	}
	if direction == -1 && c.pageIndex == 1 {
		return nil
	}
	c.loadLocked(c.pageIndex + direction)
	return nil
}

// Reload requests the current page again. It is how a user retries after a
// failed fetch.
func (c *Controller) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnauthorized {
		return common.ErrUnauthorized
	}
	c.loadLocked(c.pageIndex)
	return nil
}

// Select opens the detail panel for p.
func (c *Controller) Select(p directory.Person) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnauthorized {
		return common.ErrUnauthorized
	}
	c.selected = &p
	return nil
}

// SelectAt opens the detail panel for the i-th (0-based) record of the
// current page.
func (c *Controller) SelectAt(i int) (directory.Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnauthorized {
		return directory.Person{}, common.ErrUnauthorized
	}
	if i < 0 || i >= len(c.records) {
		return directory.Person{}, ErrNoSuchRecord
	}
	p := c.records[i]
	c.selected = &p
	return p, nil
}

// SelectByID opens the detail panel for the record with the given id on the
// current page.
func (c *Controller) SelectByID(id int) (directory.Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnauthorized {
		return directory.Person{}, common.ErrUnauthorized
	}
	for _, p := range c.records {
		if p.ID == id {
			c.selected = &p
			return p, nil
		}
	}
	return directory.Person{}, ErrNoSuchRecord
}

// Dismiss closes the detail panel.
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnauthorized {
		return common.ErrUnauthorized
	}
	c.selected = nil
	return nil
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:     c.state,
		PageIndex: c.pageIndex,
		Records:   append([]directory.Person(nil), c.records...),
	}
	if c.selected != nil {
		p := *c.selected
		s.Selected = &p
	}
	if c.state == StateFetchFailed {
		s.Err = c.lastErr
	}
	s.LastPage = c.state == StatePageReady && len(c.records) < PageSize
	return s
}

// Wait blocks until no fetch is outstanding or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	ch := c.settled
	c.mu.Unlock()

	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resetLocked puts the view back on an empty first page.
func (c *Controller) resetLocked() {
	c.pageIndex = 1
	c.records = nil
	c.selected = nil
	c.lastErr = nil
}

// invalidateLocked drops the outstanding fetch, if any.
func (c *Controller) invalidateLocked() {
	c.seq++
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	c.settleLocked()
}

func (c *Controller) settleLocked() {
	if c.settled != nil {
		close(c.settled)
		c.settled = nil
	}
}

func (c *Controller) loadLocked(pageIndex int) {
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.seq++
	seq := c.seq

	ctx, cancel := context.WithCancel(c.base)
	c.cancelFetch = cancel
	c.pageIndex = pageIndex
	c.state = StateLoadingPage
	if c.settled == nil {
		c.settled = make(chan struct{})
	}

	c.logger.Debug(ctx, "loading page", "page", pageIndex, "skip", Offset(pageIndex))
	go c.fetch(ctx, cancel, seq, pageIndex)
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, pageIndex int) {
	defer cancel()
	page, err := c.fetcher.FetchPage(ctx, PageSize, Offset(pageIndex))

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.metrics.Discarded()
		c.logger.Debug(ctx, "dropping superseded page", "page", pageIndex)
		return
	}
	c.cancelFetch = nil

	if err != nil {
		if !errors.Is(err, common.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
		}
		c.state = StateFetchFailed
		c.lastErr = err
		c.logger.Warn(ctx, "page fetch failed", "page", pageIndex, "error", err)
	} else {
		c.records = page.Users
		c.state = StatePageReady
		c.lastErr = nil
		c.logger.Info(ctx, "page loaded", "page", pageIndex, "records", len(page.Users))
	}
	c.settleLocked()
}
