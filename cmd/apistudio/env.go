package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/apistudio/pkg/storage"
)

var envFlags struct {
	disabled bool
	yes      bool
	name     string
}

func init() {
	envSetCmd.Flags().BoolVar(&envFlags.disabled, "disabled", false, "store the variable disabled")
	envDeleteCmd.Flags().BoolVarP(&envFlags.yes, "yes", "y", false, "do not ask for confirmation")
	envImportCmd.Flags().StringVar(&envFlags.name, "name", "", "environment name (default: file name)")

	envCmd.AddCommand(
		envListCmd,
		envCreateCmd,
		envDeleteCmd,
		envActivateCmd,
		envDeactivateCmd,
		envSetCmd,
		envUnsetCmd,
		envImportCmd,
	)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:     "env",
	Aliases: []string{"environment"},
	Short:   "Manage environments and their variables",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environments and their variables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envs := workspace.Environments()
		if len(envs) == 0 {
			fmt.Println("No environments")
			return nil
		}
		for _, env := range envs {
			marker := " "
			if env.Active {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, env.Name)
			for _, v := range env.Variables {
				state := ""
				if !v.Enabled {
					state = " (disabled)"
				}
				fmt.Printf("    %s = %s%s\n", v.Key, v.Value, state)
			}
		}
		return nil
	},
}

var envCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := workspace.CreateEnvironment(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created environment %s\n", env.Name)
		return nil
	},
}

var envDeleteCmd = &cobra.Command{
	Use:   "delete <environment>",
	Short: "Delete an environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := workspace.FindEnvironment(args[0])
		if err != nil {
			return err
		}
		if !envFlags.yes && !confirm(fmt.Sprintf("Delete environment %q?", env.Name)) {
			return nil
		}
		if err := workspace.DeleteEnvironment(env.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted environment %s\n", env.Name)
		return nil
	},
}

var envActivateCmd = &cobra.Command{
	Use:   "activate <environment>",
	Short: "Make an environment the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := workspace.ActivateEnvironment(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Active environment: %s\n", env.Name)
		return nil
	},
}

var envDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Leave no environment active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return workspace.DeactivateEnvironments()
	},
}

var envSetCmd = &cobra.Command{
	Use:   "set <environment> <key> <value>",
	Short: "Add or update a variable",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := workspace.FindEnvironment(args[0])
		if err != nil {
			return err
		}
		draft := storage.BeginEdit(env)
		draft.SetVariable(args[1], args[2])
		if envFlags.disabled {
			if err := draft.SetEnabled(args[1], false); err != nil {
				return err
			}
		}
		if _, err := workspace.CommitEnvironment(draft); err != nil {
			return err
		}
		fmt.Printf("%s: %s = %s\n", env.Name, args[1], args[2])
		return nil
	},
}

var envUnsetCmd = &cobra.Command{
	Use:   "unset <environment> <key>",
	Short: "Remove a variable",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := workspace.FindEnvironment(args[0])
		if err != nil {
			return err
		}
		draft := storage.BeginEdit(env)
		if err := draft.RemoveVariable(args[1]); err != nil {
			draft.Discard()
			return err
		}
		_, err = workspace.CommitEnvironment(draft)
		return err
	},
}

var envImportCmd = &cobra.Command{
	Use:   "import <dotenv-file>",
	Short: "Create an environment from a .env file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := envFlags.name
		if name == "" {
			base := filepath.Base(args[0])
			name = strings.TrimPrefix(strings.TrimSuffix(base, filepath.Ext(base)), ".")
			if name == "" {
				name = "dotenv"
			}
		}
		env, err := workspace.ImportDotenv(args[0], name)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d variables into %s\n", len(env.Variables), env.Name)
		return nil
	},
}
