// Package directoryview drives the paginated people directory screen.
//
// A Controller follows the session store: it is only active while a user is
// logged in, and it signals a redirect to the login screen otherwise. While
// active it loads one page of PageSize people at a time from a
// directory.Fetcher and tracks which record is open in the detail panel.
//
// States
//
//	Unauthorized ──login──▶ LoadingPage ──ok──▶ PageReady
//	      ▲                    │   ▲               │
//	      │                    err  └──TurnPage/Reload──┘
//	      │                    ▼
//	      └──────logout─── FetchFailed
//
// Fetches run in their own goroutine. Starting a fetch cancels the previous
// one and every completion is checked against the latest request, so the
// records shown always belong to the most recently requested page, whatever
// order responses come back in.
package directoryview
