package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/farag11/daheeh/internal/client/client"
	"github.com/farag11/daheeh/internal/client/config"
	"github.com/farag11/daheeh/internal/client/progression"
	"github.com/farag11/daheeh/internal/client/repositories/kv"
	"github.com/farag11/daheeh/internal/client/services"
	"github.com/farag11/daheeh/internal/cryptox"
	"github.com/farag11/daheeh/internal/logging"
)

// MemoryDSN selects the in-memory store; nothing survives the process.
const MemoryDSN = ":memory:"

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	store    kv.Store
	sessions *services.SessionManager
	auth     services.AuthService
	engine   *progression.Engine
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens local storage, builds the services and restores the
// previous session and progress.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	return newApp(ctx, c, log, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	hasher, err := cryptox.Lookup(c.Hasher)
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}

	if c.DatabasePath == MemoryDSN {
		a.store = kv.NewMemoryStore()
	} else {
		db, err := client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
			return nil, err
		}
		a.db = db
		a.store = kv.NewSQLiteStore(db)
	}

	a.sessions = services.NewSessionManager(a.store, log)
	a.auth = services.NewAuthService(a.store, a.sessions, hasher, log)

	a.engine, err = progression.NewEngine(a.store, progression.Options{
		ToastTTL:      c.ToastTTL,
		VisibleToasts: c.VisibleToasts,
		Celebrator:    a,
		Logger:        log,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create progression engine: %w", err)
	}

	a.hydrate(ctx)
	return a, nil
}

// hydrate restores session and progress concurrently. Neither step fails;
// both fall back to their empty state.
func (a *App) hydrate(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.sessions.Hydrate(gctx)
		return nil
	})
	g.Go(func() error {
		a.engine.Hydrate(gctx)
		return nil
	})
	_ = g.Wait()
}

// LevelUp implements progression.Celebrator.
func (a *App) LevelUp(_ context.Context, from, to int) {
	fmt.Fprintln(a.out, celebrate(from, to, a.engine.RankForLevel(to)))
}

func (a *App) isAuthenticated() bool {
	return a.sessions.Current().IsAuthenticated()
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to daheeh (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader, a.out)
}

// Close stops toast timers and closes the database.
func (a *App) Close() {
	if a.engine != nil {
		a.engine.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "error closing database", "error", err)
		}
		a.db = nil
	}
}
