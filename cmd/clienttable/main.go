package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
	"github.com/sujal12344/client-list-table-ui/internal/config"
	"github.com/sujal12344/client-list-table-ui/internal/criteria"
	"github.com/sujal12344/client-list-table-ui/internal/database"
	"github.com/sujal12344/client-list-table-ui/internal/database/repository"
	"github.com/sujal12344/client-list-table-ui/internal/prefs"
	"github.com/sujal12344/client-list-table-ui/internal/tui"
	"github.com/sujal12344/client-list-table-ui/internal/view"
)

func main() {
	cmd := &cli.Command{
		Name:   "clienttable",
		Usage:  "Browse clients with multi-key sort, facet filters and paging",
		Writer: os.Stdout,
		Action: runTUI,
		Commands: []*cli.Command{
			listCommand(),
			importCommand(),
			seedCommand(),
			resetCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// env is what every command needs: config, logger and an open database.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
	tz     *time.Location
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	tz, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warn("using local timezone", slog.String("timezone", cfg.UI.Timezone), slog.String("error", err.Error()))
		tz = time.Local
	}
	return &env{cfg: cfg, logger: logger, db: db, tz: tz}, nil
}

func (e *env) Close() error { return e.db.Close() }

func (e *env) storage() (criteria.Storage, error) {
	switch e.cfg.Storage.Backend {
	case config.BackendFile:
		return prefs.NewFileStorage(e.cfg.Storage.Dir)
	case config.BackendMemory:
		return criteria.NewMemoryStorage(), nil
	default:
		return repository.NewKVRepo(e.db), nil
	}
}

// session seeds an empty database, loads the records and the persisted
// criteria, and returns the composed view session.
func (e *env) session(ctx context.Context, storage criteria.Storage) (*view.Session, error) {
	seeded, err := database.SeedDefaults(ctx, e.db, e.cfg.Database.SeedCount)
	if err != nil {
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	if seeded > 0 {
		e.logger.Info("seeded sample clients", slog.Int("count", seeded))
	}

	records, err := repository.NewClientRepo(e.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	e.logger.Debug("clients loaded", slog.Int("count", len(records)))

	sorts := criteria.LoadSortStore(ctx, storage, e.logger)
	filters := criteria.LoadFilterStore(ctx, storage, e.logger)
	return view.NewSession(records, sorts, filters,
		view.WithPageSize(e.cfg.View.PageSize),
		view.WithSorter(clients.NewSorter(e.cfg.UI.LocaleTag())),
		view.WithLogger(e.logger),
	), nil
}

func runTUI(ctx context.Context, _ *cli.Command) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	storage, err := e.storage()
	if err != nil {
		return err
	}
	s, err := e.session(ctx, storage)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(tui.New(s, tui.Options{DateFormat: e.cfg.UI.DateFormat, Location: e.tz}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
