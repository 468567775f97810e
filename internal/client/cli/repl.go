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

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Navigate(ctx context.Context, args []string) error

	ShowProfile(ctx context.Context) error
	SetField(ctx context.Context, args []string) error
	Job(ctx context.Context, args []string) error
	Edu(ctx context.Context, args []string) error
	Analyze(ctx context.Context) error
	Save(ctx context.Context) error
	Discard(ctx context.Context) error

	Generate(ctx context.Context) error
	List(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Revise(ctx context.Context) error

	Export(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
	PDF(ctx context.Context, args []string) error
	Upgrade(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signup, login, help, exit"
	helpSignedIn  = `Available commands:
  status | plan                 account, plan and screen
  nav <screen> | home           switch screen (home, settings, job_input, cv_preview, cv_list, payment)
  profile                       open settings and show the profile
  analyze                       extract a profile from pasted CV text
  set <field> <value>           name, email, phone, linkedin, github, portfolio, summary, skills
  job add|set|duties|rm|move    edit work experience
  edu add|set|rm|move           edit education
  save | discard                keep or drop profile edits
  generate                      create a CV for a job description
  (l)ist | open <id|#> | show   browse generated CVs
  revise                        rewrite the selected CV
  export [id]                   save the CV as markdown
  backup [id] | pdf [id]        Pro: cloud backup and PDF
  upgrade                       unlock Pro
  logout | exit`
)

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// The first token of each line is the command and the rest are its
// arguments. Signed-out users only get signup, login, help and exit; the
// rest are refused until someone signs in. Handler errors are printed and
// the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("atscv> %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if quit := dispatch(ctx, a, cmd, args); quit {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return false
	case "signup", "register":
		report(a.SignUp(ctx))
		return false
	case "login":
		report(a.Login(ctx))
		return false
	}

	if !a.isLoggedIn() {
		printlnFn("Please sign in first (signup or login).")
		return false
	}

	var err error
	switch cmd {
	case "logout":
		err = a.Logout(ctx)
	case "status", "plan":
		err = a.Status(ctx)
	case "nav":
		err = a.Navigate(ctx, args)
	case "home":
		err = a.Navigate(ctx, []string{"home"})
	case "profile", "settings":
		err = a.ShowProfile(ctx)
	case "set":
		err = a.SetField(ctx, args)
	case "job":
		err = a.Job(ctx, args)
	case "edu":
		err = a.Edu(ctx, args)
	case "analyze":
		err = a.Analyze(ctx)
	case "save":
		err = a.Save(ctx)
	case "discard":
		err = a.Discard(ctx)
	case "generate":
		err = a.Generate(ctx)
	case "l", "list":
		err = a.List(ctx)
	case "open":
		err = a.Open(ctx, args)
	case "show":
		err = a.Show(ctx)
	case "revise":
		err = a.Revise(ctx)
	case "export":
		err = a.Export(ctx, args)
	case "backup":
		err = a.Backup(ctx, args)
	case "pdf":
		err = a.PDF(ctx, args)
	case "upgrade":
		err = a.Upgrade(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
	report(err)
	return false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
