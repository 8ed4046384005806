package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/apistudio/pkg/client"
	"github.com/blackcoderx/apistudio/pkg/config"
	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/storage"
	"github.com/blackcoderx/apistudio/pkg/tui"
)

var (
	cfgFile string
	envName string
	verbose bool

	cfg        config.Config
	workspace  *storage.Workspace
	httpClient *client.Client

	rootCmd = &cobra.Command{
		Use:   "apistudio",
		Short: "apistudio - compose, send and share HTTP requests from your terminal",
		Long: heredoc.Doc(`
			apistudio keeps collections of HTTP requests and environments of variables
			in a .apistudio folder next to your code. Requests are sent with the
			active environment applied and can be exported as curl, fetch, Python
			or axios snippets.

			Run without a command to open the interactive client.
		`),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			// log lines would tear the alternate screen
			logrus.SetOutput(io.Discard)
			return tui.Run(tui.Options{
				Workspace:     workspace,
				Client:        httpClient,
				DefaultTarget: cfg.DefaultTarget,
				Environment:   envName,
			})
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .apistudio/config.json)")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "environment to use instead of the active one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.FolderName)
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("APISTUDIO")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// setup loads .env, prepares the workspace folder and opens the workspace.
func setup(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (optional, warn if malformed)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
	}

	created, err := config.InitializeFolder(viper.GetString("data_dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize workspace folder: %w", err)
	}
	if created {
		fmt.Fprintf(os.Stderr, "Initialized %s\n", viper.GetString("data_dir"))
		// the first run writes config.json after the initial read
		_ = viper.ReadInConfig()
	}

	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.LogLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	workspace, err = storage.Open(storage.NewFileStore(cfg.DataDir, logrus.StandardLogger()))
	if err != nil {
		return err
	}
	httpClient = client.New(client.Options{Timeout: cfg.Timeout, Logger: logrus.StandardLogger()})
	return nil
}

// variables returns the variables of --env or of the active environment.
func variables() ([]model.EnvironmentVariable, error) {
	return workspace.VariablesFor(envName)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
