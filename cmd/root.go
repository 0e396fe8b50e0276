package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiquiz/internal/config"
	"github.com/abhisek/lexiquiz/internal/logging"
	"github.com/abhisek/lexiquiz/internal/store"
)

var (
	appCfg = &config.Config{}
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "lexiquiz",
	Short: "Turn reading material into English quizzes",
	Long:  "LexiQuiz imports learning documents and generates AI-backed English quizzes with Chinese analysis.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appCfg = config.Load()
		logger = logging.Setup(appCfg.LogLevel, appCfg.LogFormat, os.Stderr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIQUIZ_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(defineCmd)
	rootCmd.AddCommand(materialCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEXIQUIZ_DB (env or .env), then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if appCfg.DBPath != "" {
		return appCfg.DBPath, store.EnsureDir(appCfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, "", err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", err
	}
	return st, dbPath, nil
}
