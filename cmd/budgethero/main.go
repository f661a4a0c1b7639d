package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DaanHessen/budgethero/internal/auth"
	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
	"github.com/DaanHessen/budgethero/internal/store"
	"github.com/DaanHessen/budgethero/internal/telemetry"
	"github.com/DaanHessen/budgethero/internal/ui"
	"github.com/DaanHessen/budgethero/internal/util"
)

var (
	version      = "0.1.0-alpha"
	rulesVersion = "rules-1"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags that override the environment when set.
type flags struct {
	dsn     string
	dataDir string
	seed    string
	theme   string
	premium bool
}

type app struct {
	flags flags
	cfg   util.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "budgethero",
		Short:        "Grow your savings by making everyday money decisions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd.Context())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.dsn, "dsn", "", "PostgreSQL DSN (overrides BUDGETHERO_DATABASE_URL)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory for the local database, session and logs")
	pf.StringVar(&a.flags.seed, "seed", "", "seed string for deterministic outcomes (random if omitted)")
	root.Flags().StringVar(&a.flags.theme, "theme", "", "color theme: catppuccin|dracula|gruvbox|solarized_dark")
	root.Flags().BoolVar(&a.flags.premium, "premium", false, "start with the premium plan")

	root.AddCommand(
		newVersionCmd(),
		newMigrateCmd(a),
		newSimulateCmd(a),
		newLeaderboardCmd(a),
		newScenariosCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := util.LoadConfig()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("dsn") {
		cfg.DSN = a.flags.dsn
	}
	if f.Changed("data-dir") {
		cfg.DataDir = a.flags.dataDir
	}
	if f.Changed("seed") {
		cfg.Seed = a.flags.seed
	}
	if f.Changed("theme") {
		cfg.Theme = a.flags.theme
	}
	if f.Changed("premium") {
		cfg.Premium = a.flags.premium
	}
	cfg.RulesVersion = rulesVersion
	a.cfg = cfg
	return nil
}

func (a *app) play(ctx context.Context) error {
	cfg := a.cfg
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogPath(), "budgethero")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	shutdown, err := telemetry.Setup(ctx, cfg.OTELEndpoint, version)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(sctx)
	}()

	authn, err := auth.NewLocal(cfg.DataDir, cfg.AuthSecret)
	if err != nil {
		return err
	}
	id, err := authn.Ensure()
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	log.Printf("player %s (anonymous=%v)", id.UserID, id.Anonymous)

	progress, closeStore, err := openProgress(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctrl, err := newController(cfg, id.UserID)
	if err != nil {
		return err
	}
	sess, err := game.Start(ctx, ctrl, progress, id.UserID, cfg.Premium, game.WithSessionLogger(log.Default()))
	if err != nil {
		return err
	}
	return ui.Run(ctx, sess, cfg, version)
}

// openProgress returns the fallback store. An unreachable database only
// means playing offline.
func openProgress(ctx context.Context, cfg util.Config) (*store.Fallback, func(), error) {
	local, err := store.OpenLocal(ctx, cfg.LocalDBPath())
	if err != nil {
		return nil, func() {}, fmt.Errorf("open local store: %w", err)
	}
	closers := []func() error{local.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var primary store.Primary
	if cfg.Online() {
		if db, err := openDatabase(ctx, cfg.DSN); err != nil {
			log.Printf("database unavailable, playing offline: %v", err)
		} else {
			closers = append(closers, db.Close)
			primary = store.NewProgressRepo(db)
		}
	}
	return store.NewFallback(primary, local, store.WithLogger(log.Default())), closeAll, nil
}

func openDatabase(ctx context.Context, dsn string) (*store.DB, error) {
	mig, err := store.NewMigrator(dsn)
	if err != nil {
		return nil, err
	}
	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	openCtx, cancelOpen := context.WithTimeout(ctx, 5*time.Second)
	defer cancelOpen()
	return store.Open(openCtx, dsn)
}

// newController seeds outcomes from cfg.Seed, or a fresh random seed.
func newController(cfg util.Config, userID string) (*game.Controller, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	lessons, err := catalog.Lessons()
	if err != nil {
		return nil, err
	}
	seedText := cfg.Seed
	if seedText == "" {
		if seedText, err = engine.NewSeedText(); err != nil {
			return nil, fmt.Errorf("failed to generate seed: %w", err)
		}
	}
	seed, err := engine.NewSessionSeed(seedText)
	if err != nil {
		return nil, err
	}
	seed = seed.ForPlayer(userID, cfg.RulesVersion)
	log.Printf("session seed %s", seedText)
	return game.NewController(cat, engine.NewRules(seed.Stream("outcomes")), seed.Stream("scenarios"),
		game.WithLessons(lessons), game.WithLogger(log.Default())), nil
}
