package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/atscv/internal/client/shell"
	"github.com/dmitrijs2005/atscv/internal/common"
)

// Export writes the selected (or named) CV to a markdown file.
func (a *App) Export(ctx context.Context, args []string) error {
	doc, err := a.resolveDocument(args)
	if err != nil {
		return err
	}
	path, err := a.exporter.Markdown(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved", path)
	return nil
}

// Backup uploads the CV to cloud storage. Pro only.
func (a *App) Backup(ctx context.Context, args []string) error {
	doc, err := a.resolveDocument(args)
	if err != nil {
		return err
	}
	snap := a.session.Snapshot()
	url, err := a.exporter.Backup(ctx, snap.Email, doc, snap.Pro)
	if err != nil {
		return a.upsell(err)
	}
	fmt.Fprintln(a.out, "Backed up. Download link:", url)
	return nil
}

// PDF is the Pro-gated PDF download.
func (a *App) PDF(ctx context.Context, args []string) error {
	doc, err := a.resolveDocument(args)
	if err != nil {
		return err
	}
	return a.upsell(a.exporter.PDF(ctx, doc, a.session.Snapshot().Pro))
}

// upsell sends a free account to the payment screen when err is the Pro
// gate.
func (a *App) upsell(err error) error {
	if !errors.Is(err, common.ErrEntitlementRequired) {
		return err
	}
	a.router.Navigate(shell.Payment, nil)
	fmt.Fprintln(a.out, "This is a Pro feature. Type 'upgrade' to unlock it.")
	return nil
}
