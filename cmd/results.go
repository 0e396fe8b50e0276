package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/session"
)

var resultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"stats"},
	Short:   "Show recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if !cmd.Flags().Changed("limit") {
			limit = appCfg.RecentResults
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rs, err := st.ResultRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		if len(rs) == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-28s  %-18s  %-12s  %7s  %5s  %s\n",
			"ID", "Finished", "Material", "Type", "Difficulty", "Score", "%", "Time")
		fmt.Println(strings.Repeat("─", 112))
		for _, r := range rs {
			fmt.Printf("%-5d  %-16s  %-28s  %-18s  %-12s  %7s  %4d%%  %s\n",
				r.ID,
				r.FinishedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.MaterialName, 28),
				quiz.QuestionType(r.QuestionType).Label(),
				quiz.Difficulty(r.Difficulty).Label(),
				fmt.Sprintf("%d/%d", r.Correct, r.Total),
				r.Percent,
				session.FormatElapsed(time.Duration(r.ElapsedSecs)*time.Second),
			)
		}
		return nil
	},
}

func init() {
	resultsCmd.Flags().IntP("limit", "n", 20, "Number of results to show (0 = all)")
}
