package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/session"
	"github.com/abhisek/lexiquiz/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <material-id>",
	Short: "Generate a quiz for a material and answer it in the terminal",
	Long: `Generate a quiz for an imported material and answer it line by line.

The result is saved and the material's progress is updated, the same as a
quiz taken in the app. Use "lexiquiz material list" to find material IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("type", string(quiz.TypeMixed), "Question type: mixed, multiple_choice, fill_in_the_blank, true_false")
	generateCmd.Flags().Int("count", quiz.DefaultQuantity, "Number of questions (5-50, step 5)")
	generateCmd.Flags().String("difficulty", string(quiz.DifficultyIntermediate), "Difficulty: beginner, intermediate, advanced")
	generateCmd.Flags().Bool("chinese", true, "Include Chinese analysis")
	generateCmd.Flags().Bool("grammar", false, "Focus on grammar")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, _, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	rec, err := st.MaterialRepo().Get(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no material with id %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("get material: %w", err)
	}

	cfg := quiz.NewConfig(rec.Material())
	typ, _ := cmd.Flags().GetString("type")
	cfg.Type = quiz.QuestionType(typ)
	cfg.Quantity, _ = cmd.Flags().GetInt("count")
	diff, _ := cmd.Flags().GetString("difficulty")
	cfg.Difficulty = quiz.Difficulty(diff)
	cfg.IncludeChineseAnalysis, _ = cmd.Flags().GetBool("chinese")
	cfg.FocusGrammar, _ = cmd.Flags().GetBool("grammar")
	if err := cfg.Validate(); err != nil {
		return err
	}

	gw, _, err := newGateway(ctx, st.EventRepo(), logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Printf("Material: %s\n", cfg.MaterialName)
	fmt.Printf("Generating %d %s questions (%s)...\n\n", cfg.Quantity, cfg.Type.Label(), cfg.Difficulty.Label())

	sess, err := session.Generate(ctx, gw, cfg, time.Now)
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	if err := answerInTerminal(sess); err != nil {
		return err
	}

	printSummary(sess)

	res, err := store.NewQuizResult(sess)
	if err != nil {
		return err
	}
	if err := st.ResultRepo().Save(context.WithoutCancel(ctx), res); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// answerInTerminal walks the session one question at a time. Closing
// stdin leaves the remaining questions unanswered.
func answerInTerminal(sess *session.Session) error {
	scanner := bufio.NewScanner(os.Stdin)
	total := len(sess.Questions)

	for !sess.Finished() {
		q := sess.Current()
		fmt.Printf("── Question %d/%d (%s) ──\n", sess.CurrentIndex+1, total, q.Type.Label())
		fmt.Println(q.Text)
		for j, c := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			for !sess.Finished() {
				if _, err := sess.Advance(time.Now()); err != nil {
					return err
				}
			}
			break
		}

		answer := parseAnswer(strings.TrimSpace(scanner.Text()), q)
		if answer == "" {
			fmt.Println("(enter an answer or an option number)")
			continue
		}
		if err := sess.RecordAnswer(q.ID, answer); err != nil {
			return err
		}
		if _, err := sess.Advance(time.Now()); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

// parseAnswer maps an option number to its text for choice questions.
func parseAnswer(in string, q quiz.Question) string {
	if !q.IsChoice() {
		return in
	}
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1]
	}
	for _, opt := range q.Options {
		if strings.EqualFold(opt, in) {
			return opt
		}
	}
	return ""
}

func printSummary(sess *session.Session) {
	sc, err := sess.Score()
	if err != nil {
		return
	}

	for _, it := range sess.Review() {
		if it.Correct {
			fmt.Printf("\033[32m✓\033[0m %d. %s\n", it.Number, it.Text)
			continue
		}
		fmt.Printf("\033[31m✗\033[0m %d. %s\n", it.Number, it.Text)
		fmt.Printf("   Your answer: %s   Correct: %s\n", it.UserAnswer, it.CorrectAnswer)
		if it.Explanation != "" {
			fmt.Printf("   %s\n", it.Explanation)
		}
		if sess.Config.IncludeChineseAnalysis && it.Translation != "" {
			fmt.Printf("   %s\n", it.Translation)
		}
	}

	fmt.Printf("\n── Score: %d/%d (%d%%) in %s ──\n", sc.Correct, sc.Total, sc.Percent, session.FormatElapsed(sc.Elapsed))
}
