package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/runner"
)

var colFlags struct {
	description string
	yes         bool
	stopOnError bool
	rate        float64
}

func init() {
	collectionCreateCmd.Flags().StringVar(&colFlags.description, "description", "", "optional description")
	collectionDeleteCmd.Flags().BoolVarP(&colFlags.yes, "yes", "y", false, "do not ask for confirmation")
	collectionRunCmd.Flags().BoolVar(&colFlags.stopOnError, "stop-on-error", false, "stop at the first request that fails")
	collectionRunCmd.Flags().Float64Var(&colFlags.rate, "rate", 0, "requests per second (default from config)")

	collectionCmd.AddCommand(
		collectionListCmd,
		collectionCreateCmd,
		collectionDeleteCmd,
		collectionSearchCmd,
		collectionRunCmd,
		collectionImportCmd,
		collectionExportCmd,
	)
	rootCmd.AddCommand(collectionCmd)
}

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"col"},
	Short:   "Manage collections of requests",
}

func printCollections(collections []model.Collection) {
	if len(collections) == 0 {
		fmt.Println("No collections")
		return
	}
	for _, c := range collections {
		fmt.Printf("%s (%d)\n", c.Name, len(c.Requests))
		for _, r := range c.Requests {
			fmt.Printf("  %-7s %s  %s\n", r.Method, r.Name, r.URL)
		}
	}
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections and their requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCollections(workspace.Collections())
		return nil
	},
}

var collectionSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find collections and requests by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printCollections(workspace.Search(args[0]))
		return nil
	},
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := workspace.CreateCollection(args[0], colFlags.description)
		if err != nil {
			return err
		}
		fmt.Printf("Created collection %s\n", c.Name)
		return nil
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete <collection>",
	Short: "Delete a collection and all of its requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := workspace.FindCollection(args[0])
		if err != nil {
			return err
		}
		if !colFlags.yes && !confirm(fmt.Sprintf("Delete %q and its %d requests?", c.Name, len(c.Requests))) {
			return nil
		}
		if err := workspace.DeleteCollection(c.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted collection %s\n", c.Name)
		return nil
	},
}

var collectionRunCmd = &cobra.Command{
	Use:   "run <collection>",
	Short: "Send every request of a collection, one after another",
	Example: heredoc.Doc(`
		apistudio collection run "Smoke tests" --env staging --stop-on-error
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := workspace.FindCollection(args[0])
		if err != nil {
			return err
		}
		vars, err := variables()
		if err != nil {
			return err
		}

		rate := cfg.RateLimit
		if cmd.Flags().Changed("rate") {
			rate = colFlags.rate
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		r := runner.New(httpClient, nil)
		summary, err := r.Run(ctx, c, vars, runner.Options{
			RequestsPerSecond: rate,
			StopOnError:       colFlags.stopOnError,
			OnResult: func(res runner.Result) {
				if res.Err != nil {
					fmt.Printf("✗ %-7s %s  %v\n", res.Request.Method, res.Request.Name, res.Err)
					return
				}
				fmt.Printf("✓ %-7s %s  %d %s  %d ms\n", res.Request.Method, res.Request.Name,
					res.Response.Status, res.Response.StatusText, res.Response.Time)
			},
		})
		fmt.Println()
		fmt.Print(summary.Format())
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d requests failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

var collectionExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all collections and environments to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := workspace.Export()
		if err != nil {
			return err
		}
		if args[0] == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}

var collectionImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge collections and environments from an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		summary, err := workspace.Import(data)
		if err != nil {
			return err
		}
		parts := []string{
			fmt.Sprintf("%d collections added", summary.CollectionsAdded),
			fmt.Sprintf("%d replaced", summary.CollectionsReplaced),
			fmt.Sprintf("%d environments added", summary.EnvironmentsAdded),
			fmt.Sprintf("%d replaced", summary.EnvironmentsReplaced),
		}
		fmt.Println("Imported: " + strings.Join(parts, ", "))
		return nil
	},
}
