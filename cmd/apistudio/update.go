package main

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/charmbracelet/huh"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the apistudio version",
	// no workspace needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update apistudio to the latest version",
	// no workspace needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if version == "dev" {
			fmt.Println("You are running a development version of apistudio. Update is not supported.")
			return nil
		}

		latest, found, err := selfupdate.DetectLatest("blackcoderx/apistudio")
		if err != nil {
			return fmt.Errorf("failed to detect latest version: %w", err)
		}

		v, err := semver.Parse(version)
		if err != nil {
			return fmt.Errorf("failed to parse current version '%s': %w", version, err)
		}

		if !found || latest.Version.LTE(v) {
			fmt.Println("Current version is the latest")
			return nil
		}

		if !confirm(fmt.Sprintf("Update to %s?", latest.Version)) {
			return nil
		}

		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}
		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			return fmt.Errorf("failed to update binary: %w", err)
		}
		fmt.Println("Successfully updated to version", latest.Version)
		return nil
	},
}

// confirm asks a yes/no question. It answers no when the prompt cannot run.
func confirm(title string) bool {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return err == nil && ok
}
