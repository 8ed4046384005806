package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/apistudio/pkg/codegen"
)

var (
	codeTarget     string
	codeCopy       bool
	codeCollection string
)

func init() {
	codeCmd.Flags().StringVarP(&codeTarget, "target", "t", "", "curl, fetch, python or axios (default from config)")
	codeCmd.Flags().BoolVar(&codeCopy, "copy", false, "copy the snippet to the clipboard")
	codeCmd.Flags().StringVarP(&codeCollection, "collection", "c", "", "only look for the request in this collection")
	rootCmd.AddCommand(codeCmd)
}

var codeCmd = &cobra.Command{
	Use:   "code <request>",
	Short: "Print a saved request as a code snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := cfg.DefaultTarget
		if codeTarget != "" {
			t, err := codegen.ParseTarget(codeTarget)
			if err != nil {
				return err
			}
			target = t
		}

		req, _, err := workspace.FindRequest(args[0], codeCollection)
		if err != nil {
			return err
		}
		vars, err := variables()
		if err != nil {
			return err
		}

		snippet, err := codegen.Emit(target, req, vars)
		if err != nil {
			return err
		}
		fmt.Println(snippet)

		if codeCopy {
			if err := clipboard.WriteAll(snippet); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
		}
		return nil
	},
}
