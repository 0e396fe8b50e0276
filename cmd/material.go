package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiquiz/internal/material"
	"github.com/abhisek/lexiquiz/internal/store"
)

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Manage imported materials",
}

var materialAddCmd = &cobra.Command{
	Use:   "add <file.pdf>...",
	Short: "Import PDF documents into the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		im := material.NewImporter(st.MaterialRepo())
		var failed int
		for _, path := range args {
			m, err := im.Import(cmd.Context(), path)
			if err != nil {
				fmt.Printf("✗ %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("✓ %s  %s  %s\n", m.ID, m.Name, m.SizeLabel)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d imports failed", failed, len(args))
		}
		return nil
	},
}

var materialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported materials, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		recs, err := st.MaterialRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list materials: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No materials imported. Use \"lexiquiz material add <file.pdf>\".")
			return nil
		}

		fmt.Printf("%-36s  %-32s  %-10s  %8s  %8s  %s\n",
			"ID", "Name", "Imported", "Size", "Progress", "Status")
		fmt.Println(strings.Repeat("─", 118))
		for _, r := range recs {
			fmt.Printf("%-36s  %-32s  %-10s  %8s  %7d%%  %s\n",
				r.ID,
				truncate(r.Name, 32),
				r.ImportedAt.Local().Format("2006-01-02"),
				r.SizeLabel,
				r.Progress,
				r.Status,
			)
		}
		return nil
	},
}

var materialRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a material from the library (its results are kept)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		err = st.MaterialRepo().Delete(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no material with id %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("delete material: %w", err)
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}

func init() {
	materialCmd.AddCommand(materialAddCmd)
	materialCmd.AddCommand(materialListCmd)
	materialCmd.AddCommand(materialRemoveCmd)
}
