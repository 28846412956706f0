// Package cli provides the interactive command-line front end of userdir.
//
// It wires configuration, the process-wide session store, the directory
// controller and an interactive REPL. Typical flow: signup, login, browse the
// people directory page by page and open a record to see its details.
//
// Key features:
//   - Signup / Login / Logout against the in-memory session store
//   - Paged browsing of the remote directory (next, prev, reload)
//   - Detail view of a single person (open, close)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
