package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/common"
)

var errUsage = errors.New("usage: open <n>")

// Users opens the directory screen. Without a session the user lands on the
// login screen instead.
func (a *App) Users(ctx context.Context) error {
	if a.navigator.Go(nav.Directory, a.store.IsAuthorized()) != nav.Directory {
		fmt.Fprintln(a.out, "Please log in to browse the directory.")
		return common.ErrUnauthorized
	}
	if err := a.directory.Activate(ctx); err != nil {
		return err
	}
	return a.showPage(ctx)
}

// TurnPage moves one page back (-1) or forward (+1).
func (a *App) TurnPage(ctx context.Context, direction int) error {
	before := a.directory.Snapshot().PageIndex
	if err := a.directory.TurnPage(direction); err != nil {
		return err
	}
	if direction < 0 && before == 1 {
		fmt.Fprintln(a.out, "Already on the first page.")
		return nil
	}
	return a.showPage(ctx)
}

// Reload fetches the current page again.
func (a *App) Reload(ctx context.Context) error {
	if err := a.directory.Reload(); err != nil {
		return err
	}
	return a.showPage(ctx)
}

// Open shows the detail panel for the n-th (1-based) row of the page.
func (a *App) Open(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return errUsage
	}
	p, err := a.directory.SelectAt(n - 1)
	if err != nil {
		return err
	}
	renderPerson(a.out, p)
	return nil
}

// CloseDetail dismisses the detail panel.
func (a *App) CloseDetail(ctx context.Context) error {
	if err := a.directory.Dismiss(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Detail closed.")
	return nil
}

// showPage waits up to RenderWait for the outstanding fetch and prints what
// the controller holds at that point.
func (a *App) showPage(ctx context.Context) error {
	waitCtx := ctx
	if a.config != nil && a.config.RenderWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, a.config.RenderWait)
		defer cancel()
	}
	if err := a.directory.Wait(waitCtx); err != nil {
		a.logger.Debug(ctx, "rendering before page settled", "error", err)
	}
	renderPage(a.out, a.directory.Snapshot())
	return nil
}
