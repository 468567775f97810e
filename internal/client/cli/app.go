package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/atscv/internal/client/ai"
	"github.com/dmitrijs2005/atscv/internal/client/ai/gemini"
	"github.com/dmitrijs2005/atscv/internal/client/config"
	"github.com/dmitrijs2005/atscv/internal/client/export"
	"github.com/dmitrijs2005/atscv/internal/client/generation"
	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/client/services"
	"github.com/dmitrijs2005/atscv/internal/client/shell"
	"github.com/dmitrijs2005/atscv/internal/client/store"
	"github.com/dmitrijs2005/atscv/internal/common"
	"github.com/dmitrijs2005/atscv/internal/logging"
)

type App struct {
	config   *config.Config
	session  services.SessionService
	cv       services.CVService
	exporter *export.Exporter
	router   *shell.Router
	logger   logging.Logger

	// draft is the profile being edited on the settings screen.
	draft *models.Profile

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the local database and builds the services from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := store.OpenDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	st := store.New(db, store.WithCredentialCheck(c.VerifyCredentials))
	session := services.NewSessionService(st, logger)

	gw := ai.NewGateway(gemini.New(c.APIKey), c.APIKey,
		ai.WithModelName(c.Model),
		ai.WithLogger(logger.With("component", "ai")),
		ai.WithRateLimit(ai.DefaultRateLimit()),
	)
	if !gw.Configured() {
		logger.Warn(ctx, "no API key configured; AI commands will fail")
	}
	cv := services.NewCVService(generation.NewProtocol(gw), session, services.WithCVLogger(logger))

	var uploader export.Uploader
	if c.BackupEnabled() {
		u, err := export.NewS3Uploader(ctx, export.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
		if err != nil {
			logger.Warn(ctx, "cloud backup disabled", "err", err)
		} else {
			uploader = u
		}
	}
	exporter := export.NewExporter(c.ExportDir, uploader, logger)

	app := newApp(c, session, cv, exporter, logger, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, session services.SessionService, cv services.CVService,
	exporter *export.Exporter, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		session:  session,
		cv:       cv,
		exporter: exporter,
		router:   shell.NewRouter(),
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}
}

// Run restores the persisted session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if _, err := a.session.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome to %s (type 'help' for commands)\n", common.AppName)
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == services.SignedIn
}

func (a *App) screen() shell.Screen {
	return a.router.Current(a.isLoggedIn())
}

// getStatus renders the prompt status, e.g. "(u@test.com Pro · cv_list)".
func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if !snap.SignedIn() {
		return fmt.Sprintf("(%s)", shell.SignedOut)
	}
	return fmt.Sprintf("(%s %s · %s)", snap.Email, snap.Plan(), a.screen())
}

// requestContext bounds one AI-backed command.
func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
