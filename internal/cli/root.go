package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ericogr/squadxp/internal/config"
	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/random"
	"github.com/ericogr/squadxp/internal/storage"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags override the environment for a single invocation.
type globalFlags struct {
	dbPath     string
	configPath string
	seed       int64
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:          "progressionctl",
		Short:        "Operate the squad XP progression service",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "sqlite database path (defaults to $"+constants.EnvDBPath+")")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "JSON tuning file (defaults to $"+constants.EnvConfigPath+")")
	cmd.PersistentFlags().Int64Var(&g.seed, "seed", 0, "base random seed; 0 uses $"+constants.EnvSeed+" or a fresh seed")

	cmd.AddCommand(
		serveCmd(&g),
		applyCmd(&g),
		seedCmd(&g),
		strengthCmd(&g),
		versionCmd(),
	)
	return cmd
}

// session is what every command needs after configuration is resolved.
type session struct {
	cfg  *config.LoadedConfig
	repo storage.Repository
}

// open resolves configuration from the environment and the flags, then
// opens and migrates the database.
func (g *globalFlags) open() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if g.configPath != "" {
		s, err := config.LoadFile(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg.Settings = s
	}
	if g.dbPath != "" {
		cfg.DBPath = g.dbPath
	}
	if g.seed != 0 {
		cfg.Seed = g.seed
	}
	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, repo: storage.NewSQLiteRepository(db)}, nil
}

// baseSeed returns the configured seed, or a fresh one when none is set.
func (s *session) baseSeed() (int64, error) {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed, nil
	}
	return random.NewSeed()
}
