// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes2docs/internal/history"
	"github.com/pdiddy/notes2docs/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [note]",
	Short: "List documents published from notes",
	Long: `History lists recorded publications, newest first. Pass a note path to
see only that note's documents. Use --json or --yaml for machine-readable
output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries (negative for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(viper.GetString("history_dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := history.ListOptions{}
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	if opts.Limit == 0 {
		opts.Limit = -1
	}
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		opts.SourcePath = abs
	}

	ctx := context.Background()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return store.ExportJSON(ctx, os.Stdout, opts)
	}
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return store.ExportYAML(ctx, os.Stdout, opts)
	}

	pubs, err := store.List(ctx, opts)
	if err != nil {
		return err
	}
	formatHistory(os.Stdout, pubs)
	return nil
}

func formatHistory(w io.Writer, pubs []types.Publication) {
	if len(pubs) == 0 {
		fmt.Fprintln(w, "No publications found.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-30s  %-24s  %s\n", "Published", "Title", "Note", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, p := range pubs {
		fmt.Fprintf(w, "%-16s  %-30s  %-24s  %s\n",
			p.PublishedAt.Local().Format("2006-01-02 15:04"),
			truncate(p.Title, 30), truncate(filepath.Base(p.SourcePath), 24), p.URL)
	}

	fmt.Fprintf(w, "\n%d publications\n", len(pubs))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
