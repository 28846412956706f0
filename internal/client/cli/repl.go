package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Users(ctx context.Context) error
	TurnPage(ctx context.Context, direction int) error
	Reload(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	CloseDetail(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Prompts issued by the commands read from the
// same reader. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  help, signup, login, whoami, exit | quit
//
//	Logged in:
//	  help, users, next | n, prev | p, open <n>, close, reload, whoami,
//	  logout, exit | quit
//
// Errors returned by command handlers are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("userdir %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: users, (n)ext, (p)rev, open <n>, close, reload, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, whoami, exit")
			}

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "users":
			cmdErr = a.Users(ctx)

		case "n", "next":
			cmdErr = a.TurnPage(ctx, 1)

		case "p", "prev":
			cmdErr = a.TurnPage(ctx, -1)

		case "reload":
			cmdErr = a.Reload(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <n>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "close":
			cmdErr = a.CloseDetail(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
