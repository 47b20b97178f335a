// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes2docs/internal/secrets"
)

var sealCmd = &cobra.Command{
	Use:   "seal [file]",
	Short: "Encrypt a credentials file for storage beside the project",
	Long: `Seal encrypts a file (usually the service-account key) with a fresh
Fernet key and writes <file>.enc. Point credentials.sealed_file at the result
and publish decrypts it in memory. The key is stored in the sealed file, so
sealing only keeps the plain key out of casual view.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeal,
}

var unsealCmd = &cobra.Command{
	Use:   "unseal [file.enc]",
	Short: "Decrypt a sealed file back to plaintext",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnseal,
}

func init() {
	sealCmd.Flags().Bool("remove", false, "delete the plaintext file after sealing")

	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(unsealCmd)
}

func runSeal(cmd *cobra.Command, args []string) error {
	out, err := secrets.Seal(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "sealed: %s -> %s\n", args[0], out)

	if remove, _ := cmd.Flags().GetBool("remove"); remove {
		if err := os.Remove(args[0]); err != nil {
			return fmt.Errorf("removing %s: %w", args[0], err)
		}
		fmt.Fprintf(os.Stdout, "removed: %s\n", args[0])
	}
	return nil
}

func runUnseal(cmd *cobra.Command, args []string) error {
	out, err := secrets.Unseal(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "unsealed: %s -> %s\n", args[0], out)
	return nil
}
