// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes2docs/internal/compile"
	"github.com/pdiddy/notes2docs/internal/notes"
	"github.com/pdiddy/notes2docs/pkg/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile [note]",
	Short: "Print the edit requests a note compiles to",
	Long: `Compile converts a markdown note into the batch-update request body
that publish would submit, without contacting the service. Front matter is
stripped first. Use --preview to print the plain text the document will
contain instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("format", "json", "output format: json or yaml")
	compileCmd.Flags().Bool("preview", false, "print the document text instead of the requests")
	compileCmd.Flags().Bool("strict", false, "reject malformed checkbox lines")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	note, err := notes.Read(args[0])
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	var reqs []types.Request
	if strict {
		if reqs, err = compile.CompileStrict(note.Body); err != nil {
			return err
		}
	} else {
		reqs = compile.Compile(note.Body)
	}

	text, err := compile.Replay(reqs)
	if err != nil {
		return fmt.Errorf("compiled batch is inconsistent: %w", err)
	}

	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		fmt.Fprint(os.Stdout, text)
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	return writeBatch(os.Stdout, types.BatchUpdate{Requests: reqs}, format)
}

func writeBatch(w io.Writer, batch types.BatchUpdate, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(batch); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}
