package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Open(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	New(ctx context.Context) error
	Ordos(ctx context.Context) error
	Sort(ctx context.Context, dir string) error
	Scan(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the Don't Panic CLI.
//
// It reads a line from the shared line reader, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on input EOF or when the user
// types "exit" or "quit". Command handlers that prompt for more input read
// from the same line reader, so their lines are never buffered away here.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in LineReader) {
	for {
		printlnFn(fmt.Sprintf("dp %s> ", statusFn()))
		line, ok := in.ReadLine()
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Commandes : (l)ist, refresh, search <terme>, open <id>, delete <id>, new, ordos, sort asc|desc, scan, logout, exit")
			} else {
				printlnFn("Commandes : login, register, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "new":
			_ = a.New(ctx)

		case "ordos":
			_ = a.Ordos(ctx)

		case "sort":
			if len(args) == 0 {
				printlnFn("Usage: sort asc|desc")
				continue
			}
			_ = a.Sort(ctx, args[0])

		case "scan":
			_ = a.Scan(ctx)

		case "exit", "quit":
			printlnFn("À bientôt !")
			return

		default:
			printlnFn("Commande inconnue :", cmd)
		}
	}
}
