package commands

import (
	"fmt"
	"resultfetcher/internal/results"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var validateFile *string

func init() {
	validateFile = validateCmd.Flags().StringP("file", "f", "", "Read roll numbers from a file.")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [roll numbers...] [--file <path>]",
	Short: "Checks roll numbers locally without contacting the portal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rollNumbers, err := collectRollNumbers(args, *validateFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		invalid := 0
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Roll No.", "Problem"})
		for _, rollNumber := range rollNumbers {
			err := results.ValidateRollNumber(rollNumber)
			if err == nil {
				t.AppendRow(table.Row{rollNumber, "-"})
				continue
			}
			invalid++
			t.AppendRow(table.Row{rollNumber, err.Error()})
		}
		t.Render()

		if invalid > 0 {
			return fmt.Errorf("%d of %d roll numbers are invalid", invalid, len(rollNumbers))
		}
		return nil
	},
}
