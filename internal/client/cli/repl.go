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

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	GetStarted(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	SubmitIdea(ctx context.Context) error
	ListIdeas(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Handler errors are rendered with userMessage and never end the loop; it
// returns on EOF, on ctx cancellation or when the user types "exit"/"quit".
//
//	Always:          help, ideas, whoami, exit | quit
//	Logged out:      signup, login, getstarted, verify, resend
//	Logged in:       idea, profile, verify, resend, logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("ignite %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: idea, ideas, profile, verify, resend, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, getstarted, verify, resend, ideas, whoami, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "getstarted":
			cmdErr = a.GetStarted(ctx)

		case "verify":
			cmdErr = a.Verify(ctx)

		case "resend":
			cmdErr = a.Resend(ctx)

		case "idea", "submit":
			cmdErr = a.SubmitIdea(ctx)

		case "ideas", "l", "list":
			cmdErr = a.ListIdeas(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(userMessage(cmdErr))
		}
	}
}
