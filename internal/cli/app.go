package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/vidscribe/scribe/internal/store/sqlite"
	"github.com/vidscribe/scribe/pkg/scribesdk"
	"github.com/vidscribe/scribe/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the credential store, SDK client, and session manager
// behind the command set.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store    scribesdk.CredentialStore
	closer   io.Closer // sqlite store, nil with --no-persist
	client   *scribesdk.Client
	sessions *scribesdk.SessionManager

	stdout io.Writer
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		stdout: os.Stdout,
		logger: slogx.New(slogx.Config{
			Service: "scribe",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}
	app.initClient()

	sessions, err := scribesdk.NewSessionManager(app.client, scribesdk.NavigatorFunc(app.navigateTo))
	if err != nil {
		app.closeStore()
		return nil, err
	}
	app.sessions = sessions

	return app, nil
}

// Close releases the state database.
func (app *Application) Close() error {
	return app.closeStore()
}

func (app *Application) initStore() error {
	if app.cfg.NoPersist {
		app.store = scribesdk.NewMemStore()
		return nil
	}

	if dir := filepath.Dir(app.cfg.StateFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	store, err := sqlite.New(app.cfg.StateFile, []byte(app.cfg.StatePassphrase))
	if err != nil {
		return err
	}
	app.store = store
	app.closer = store
	return nil
}

func (app *Application) initClient() {
	client := scribesdk.New(app.cfg.APIBaseURL, app.store)
	client.HTTPClient.Timeout = app.cfg.RequestTimeout
	client.RefreshTimeout = app.cfg.RefreshTimeout
	if app.cfg.RequestsPerMin > 0 {
		perSecond := float64(app.cfg.RequestsPerMin) / 60
		client.Limiter = rate.NewLimiter(rate.Limit(perSecond), app.cfg.RequestsPerMin)
	}
	app.client = client
}

func (app *Application) closeStore() error {
	if app.closer == nil {
		return nil
	}
	err := app.closer.Close()
	app.closer = nil
	return err
}

// navigateTo is the CLI's Navigator: session transitions and guard redirects
// surface as a log line naming the view the browser app would land on.
func (app *Application) navigateTo(path string) {
	app.logger.Info("navigating", "to", path)
}

func (app *Application) printf(format string, args ...any) {
	fmt.Fprintf(app.stdout, format, args...)
}
