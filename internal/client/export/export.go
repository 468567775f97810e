// Package export writes generated CVs out of the application: a markdown
// file in the export directory for everyone, and an S3 backup for Pro
// accounts.
package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/common"
	"github.com/dmitrijs2005/atscv/internal/filex"
	"github.com/dmitrijs2005/atscv/internal/logging"
)

const (
	markdownExt         = "md"
	markdownContentType = "text/markdown; charset=utf-8"
)

var (
	ErrBackupDisabled = errors.New("cloud backup is not configured")
	ErrPDFUnavailable = errors.New("PDF rendering is not available in the terminal client; use export for markdown")
)

// Uploader stores a blob under key and returns a link to it.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type Exporter struct {
	dir      string
	uploader Uploader
	logger   logging.Logger
}

// NewExporter writes files under dir. uploader may be nil, which disables
// Backup.
func NewExporter(dir string, uploader Uploader, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Exporter{dir: dir, uploader: uploader, logger: logger}
}

// Markdown writes the raw body to cv_<id>.md and returns the file's path.
func (e *Exporter) Markdown(ctx context.Context, doc models.Document) (string, error) {
	if doc.ID == "" {
		return "", models.ErrMissingID
	}

	dir, err := filex.EnsureDir(e.dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, doc.FileName(markdownExt))
	if err := filex.WriteFileAtomic(path, []byte(doc.Body), 0o644); err != nil {
		return "", err
	}

	e.logger.Info(ctx, "markdown exported", "id", doc.ID, "path", path)
	return path, nil
}

// Backup uploads the markdown body for a Pro account and returns a
// download link.
func (e *Exporter) Backup(ctx context.Context, email string, doc models.Document, pro bool) (string, error) {
	if !pro {
		return "", common.ErrEntitlementRequired
	}
	if e.uploader == nil {
		return "", ErrBackupDisabled
	}
	if doc.ID == "" {
		return "", models.ErrMissingID
	}

	key := BackupKey(email, doc)
	url, err := e.uploader.Upload(ctx, key, []byte(doc.Body), markdownContentType)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", doc.ID, err)
	}

	e.logger.Info(ctx, "cv backed up", "id", doc.ID, "key", key)
	return url, nil
}

// PDF checks the Pro gate for PDF export. Rendering itself is not
// supported, so Pro accounts get ErrPDFUnavailable.
func (e *Exporter) PDF(_ context.Context, _ models.Document, pro bool) error {
	if !pro {
		return common.ErrEntitlementRequired
	}
	return ErrPDFUnavailable
}

// BackupKey is the object key used for doc, e.g. cvs/u@test.com/cv_<id>.md.
func BackupKey(email string, doc models.Document) string {
	return "cvs/" + email + "/" + doc.FileName(markdownExt)
}
