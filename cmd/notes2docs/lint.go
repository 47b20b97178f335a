// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes2docs/internal/lint"
	"github.com/pdiddy/notes2docs/internal/notes"
)

var lintCmd = &cobra.Command{
	Use:   "lint [notes...]",
	Short: "Report markdown that publish inserts as literal text",
	Long: `Lint lists code fences, links, images, emphasis, ordered lists, quotes,
and headings deeper than level 4. Publish does not fail on these; they reach
the document as plain text. With --strict, any finding is an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().Bool("strict", false, "exit with an error when anything is reported")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	total := 0
	for _, path := range args {
		note, err := notes.Read(path)
		if err != nil {
			return err
		}
		for _, f := range lint.Check([]byte(note.Body)) {
			fmt.Fprintf(os.Stdout, "%s: %s\n", path, f)
			total++
		}
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && total > 0 {
		return fmt.Errorf("%d finding(s)", total)
	}
	return nil
}
