// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes2docs/internal/credentials"
	"github.com/pdiddy/notes2docs/internal/gdocs"
	"github.com/pdiddy/notes2docs/internal/history"
	"github.com/pdiddy/notes2docs/internal/publish"
	"github.com/pdiddy/notes2docs/pkg/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish [notes...]",
	Short: "Create a shared Google Doc from each markdown note",
	Long: `Publish compiles each note into document edit requests, creates a new
Google Doc, applies the requests in one batch, and shares the document.

The title comes from --title, then the note's front matter, then config.
The document is shared with --email (or front matter share_with, or config
share.email) using --role; without an email it is made readable by anyone
with the link unless share.public is false or --private is given.

Notes already published with identical content are skipped unless --force.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("title", "", "document title (overrides front matter and config)")
	publishCmd.Flags().String("email", "", "share with this email address")
	publishCmd.Flags().String("role", "", "role granted to --email: writer, commenter, or reader")
	publishCmd.Flags().Bool("private", false, "do not share the document")
	publishCmd.Flags().Bool("force", false, "publish even if the note is unchanged")
	publishCmd.Flags().Bool("dry-run", false, "compile and validate without calling the service")
	publishCmd.Flags().Bool("strict", false, "reject malformed checkbox lines")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := publishConfig()
	if err != nil {
		return err
	}

	opts := publish.Options{}
	opts.Title, _ = cmd.Flags().GetString("title")
	opts.Email, _ = cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")
	opts.Role = types.ShareRole(role)
	opts.Private, _ = cmd.Flags().GetBool("private")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.Strict, _ = cmd.Flags().GetBool("strict")

	if opts.Role != "" && !opts.Role.Valid() {
		return fmt.Errorf("--role %q: use writer, commenter, or reader", role)
	}

	ctx := context.Background()
	p := &publish.Publisher{Config: cfg, Out: os.Stdout}

	if !opts.DryRun {
		client, sa, err := credentials.NewClient(ctx, cfg.Credentials, cfg.Docs.Timeout)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Authenticated as %s\n", sa.ClientEmail)
		p.Docs = gdocs.New(client, cfg.Docs)

		store, err := history.NewStore(cfg.HistoryDir)
		if err != nil {
			return err
		}
		defer store.Close()
		p.History = store
	}

	var published, skipped, failed int
	for _, path := range args {
		opts.Path = path
		res, err := p.Publish(ctx, opts)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", path, err)
			failed++
		case res.Skipped:
			skipped++
		default:
			published++
		}
	}

	if len(args) > 1 {
		fmt.Fprintf(os.Stdout, "\nSummary: %d published, %d skipped, %d failed (total: %d)\n",
			published, skipped, failed, len(args))
	}
	if failed > 0 {
		return fmt.Errorf("%d note(s) failed to publish", failed)
	}
	return nil
}
