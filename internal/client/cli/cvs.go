package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/client/shell"
	"github.com/dmitrijs2005/atscv/internal/common"
)

var errNoSelection = errors.New("no CV selected: use 'open <id|#>' first")

// Generate reads a job description and generates a tailored CV from the
// saved profile. The new document opens in the preview.
func (a *App) Generate(ctx context.Context) error {
	a.router.Navigate(shell.JobInput, nil)

	jd, err := getMultiline(a.reader, "Paste the job description", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Generating your CV...")
	doc, err := a.cv.GenerateCV(ctx, jd)
	if err != nil {
		return err
	}

	a.router.Navigate(shell.CVPreview, &doc)
	printDocument(a, doc)
	return nil
}

// List shows the generated CVs, newest first.
func (a *App) List(ctx context.Context) error {
	a.router.Navigate(shell.CVList, nil)

	docs := a.session.Snapshot().Documents
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No CVs generated yet. Type 'generate' to create one.")
		return nil
	}

	fmt.Fprintf(a.out, "%-3s  %-36s  %-5s  %s\n", "#", "ID", "ATS", "Generated")
	for i, d := range docs {
		fmt.Fprintf(a.out, "%-3d  %-36s  %-5d  %s\n", i+1, d.ID, d.ATSScore, d.GeneratedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// Open selects a CV by id or list position and shows it.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: open <id|#>", errUsage)
	}
	doc, err := a.lookupDocument(args[0])
	if err != nil {
		return err
	}
	a.router.Navigate(shell.CVPreview, &doc)
	printDocument(a, doc)
	return nil
}

// Show prints the selected CV again.
func (a *App) Show(ctx context.Context) error {
	doc, err := a.resolveDocument(nil)
	if err != nil {
		return err
	}
	a.router.Navigate(shell.CVPreview, &doc)
	printDocument(a, doc)
	return nil
}

// Revise asks for a change request and rewrites the selected CV in place.
func (a *App) Revise(ctx context.Context) error {
	doc, err := a.resolveDocument(nil)
	if err != nil {
		return err
	}

	req, err := getMultiline(a.reader, "Describe the changes you want", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Revising your CV...")
	revised, err := a.cv.ReviseCV(ctx, doc.ID, req)
	if err != nil {
		return err
	}

	a.router.Refresh(revised)
	a.router.Navigate(shell.CVPreview, &revised)
	printDocument(a, revised)
	return nil
}

// resolveDocument returns the document named by args[0], or the selected
// one when args is empty. The selection is re-read from the session so a
// revision made elsewhere is picked up.
func (a *App) resolveDocument(args []string) (models.Document, error) {
	if len(args) > 0 {
		return a.lookupDocument(args[0])
	}
	sel, ok := a.router.Selected()
	if !ok {
		return models.Document{}, errNoSelection
	}
	doc, ok := a.session.Snapshot().Document(sel.ID)
	if !ok {
		return models.Document{}, common.ErrorNotFound
	}
	return doc, nil
}

func (a *App) lookupDocument(ref string) (models.Document, error) {
	snap := a.session.Snapshot()
	if doc, ok := snap.Document(ref); ok {
		return doc, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(snap.Documents) {
		return snap.Documents[n-1], nil
	}
	return models.Document{}, common.ErrorNotFound
}

func printDocument(a *App, d models.Document) {
	fmt.Fprintf(a.out, "CV %s  (ATS score %d, generated %s)\n", d.ID, d.ATSScore, d.GeneratedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(a.out, "----")
	fmt.Fprintln(a.out, d.Body)
	fmt.Fprintln(a.out, "----")
}
