package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiquiz/internal/llm"
	"github.com/abhisek/lexiquiz/internal/lookup"
	"github.com/abhisek/lexiquiz/internal/quizgen"
)

var defineCmd = &cobra.Command{
	Use:   "define <word>...",
	Short: "Look up English words",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		cache := lookup.New(quizgen.New(provider, quizgen.DefaultConfig()))

		var failed int
		for i, word := range args {
			if i > 0 {
				fmt.Println()
			}
			def, err := cache.Lookup(ctx, word)
			if errors.Is(err, quizgen.ErrEmptyWord) {
				fmt.Printf("%q has no letters to look up\n", word)
				failed++
				continue
			}
			if err != nil {
				logger.Error().Err(err).Str("word", word).Msg("lookup failed")
				failed++
				continue
			}
			printDefinition(quizgen.CleanWord(word), def)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d lookups failed", failed, len(args))
		}
		return nil
	},
}

func printDefinition(word string, def quizgen.Definition) {
	head := word
	if def.Pronunciation != "" {
		head += "  " + def.Pronunciation
	}
	fmt.Println(head)
	fmt.Println(strings.Repeat("─", len([]rune(head))))
	fmt.Println(def.Definition)
	if def.Example != "" {
		fmt.Printf("e.g. %s\n", def.Example)
	}
}
