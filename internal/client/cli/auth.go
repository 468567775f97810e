package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/atscv/internal/common"
)

// SignUp prompts for an email and password and creates a local account,
// which also signs it in. The password is wiped before returning.
func (a *App) SignUp(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.SignUp(ctx, email, password); err != nil {
		return err
	}

	a.resetView()
	fmt.Fprintf(a.out, "Account created. %s\n", a.greeting())
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	a.resetView()
	fmt.Fprintln(a.out, a.greeting())
	return nil
}

// Logout clears the session; account data stays on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.resetView()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// resetView drops the screen, selection and profile draft after any
// identity change so nothing carries over to the next account.
func (a *App) resetView() {
	a.router.Reset()
	a.draft = nil
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) greeting() string {
	return "Welcome, " + a.session.Snapshot().Greeting()
}
