package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiquiz/internal/app"
	"github.com/abhisek/lexiquiz/internal/llm"
	"github.com/abhisek/lexiquiz/internal/logging"
	"github.com/abhisek/lexiquiz/internal/material"
	"github.com/abhisek/lexiquiz/internal/quizgen"
	"github.com/abhisek/lexiquiz/internal/screens/profile"
	"github.com/abhisek/lexiquiz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, dbPath, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := logging.OpenFile(appCfg.LogFile, dbPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := logging.Setup(appCfg.LogLevel, "json", logFile)

	opts := app.Options{
		Materials: st.MaterialRepo(),
		Results:   st.ResultRepo(),
		Importer:  material.NewImporter(st.MaterialRepo()),
		Profile: profile.Info{
			DBPath:  dbPath,
			LogFile: logFile.Name(),
			Version: version,
		},
		RecentResults: appCfg.RecentResults,
		Logger:        log,
	}

	gw, llmCfg, err := newGateway(ctx, st.EventRepo(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation and word lookup will be unavailable.")
		log.Warn().Err(err).Msg("llm provider not configured")
	} else {
		opts.Generator = gw
		opts.Definer = gw
		opts.Profile.Provider = llmCfg.Provider
		opts.Profile.Model = llmCfg.Model()
	}

	log.Info().Str("db", dbPath).Msg("starting lexiquiz")
	return app.Run(opts)
}

// newGateway resolves the provider from the environment and wraps it in a
// generation gateway. eventRepo may be nil to skip request logging.
func newGateway(ctx context.Context, eventRepo store.EventRepo, log zerolog.Logger) (*quizgen.Gateway, llm.Config, error) {
	llmCfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, llm.Config{}, err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, eventRepo, log)
	if err != nil {
		return nil, llmCfg, err
	}
	return quizgen.New(provider, quizgen.DefaultConfig()), llmCfg, nil
}
