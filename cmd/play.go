package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz app",
	Long:  "Start the interactive quiz app. Running lexiquiz with no command does the same.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
