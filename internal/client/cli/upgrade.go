package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/atscv/internal/client/payment"
	"github.com/dmitrijs2005/atscv/internal/client/shell"
)

// Upgrade runs the simulated checkout and unlocks Pro on success.
func (a *App) Upgrade(ctx context.Context) error {
	if a.session.Snapshot().Pro {
		fmt.Fprintln(a.out, "You are already on the Pro plan.")
		return nil
	}
	a.router.Navigate(shell.Payment, nil)

	fmt.Fprintf(a.out, "Upgrade to Pro for %s (one-time). Unlimited CVs, PDF download and cloud backup.\n", payment.ProPrice)
	fmt.Fprintf(a.out, "Test mode: use card %s, any future expiry and any CVC.\n", payment.TestCardNumber)

	var card payment.Card
	var err error
	if card.Number, err = getSimpleText(a.reader, "Card number", a.out); err != nil {
		return err
	}
	if card.Expiry, err = getSimpleText(a.reader, "Expiry (MM/YY)", a.out); err != nil {
		return err
	}
	if card.CVC, err = getSimpleText(a.reader, "CVC", a.out); err != nil {
		return err
	}

	if err := card.Validate(a.now()); err != nil {
		return fmt.Errorf("payment declined: %w", err)
	}
	if err := a.session.CompleteCheckout(ctx); err != nil {
		return err
	}

	a.router.Navigate(shell.Home, nil)
	fmt.Fprintf(a.out, "Payment successful (card ending %s). Welcome to Pro!\n", card.Last4())
	return nil
}

// Navigate switches screens: nav <home|settings|job_input|cv_preview|cv_list|payment>.
func (a *App) Navigate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: nav <screen>", errUsage)
	}
	sc, err := shell.ParseScreen(args[0])
	if err != nil {
		return err
	}
	a.router.Navigate(sc, nil)
	fmt.Fprintln(a.out, "Screen:", a.screen())
	return nil
}

// Status prints the account, plan and current screen.
func (a *App) Status(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.SignedIn() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	profile := "not set"
	if snap.Profile != nil {
		profile = "saved"
	}
	fmt.Fprintf(a.out, "Account: %s\nPlan:    %s\nProfile: %s\nCVs:     %d\nScreen:  %s\n",
		snap.Email, snap.Plan(), profile, len(snap.Documents), a.screen())
	return nil
}
