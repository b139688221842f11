package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teemow/calendarenv/internal/calendar"
	"github.com/teemow/calendarenv/internal/environment"
	"github.com/teemow/calendarenv/internal/google"
	"github.com/teemow/calendarenv/internal/logging"
)

const (
	envTokenPath  = "CALENDARENV_TOKEN"
	envConfigPath = "CALENDARENV_CONFIG"
)

// rootOptions holds the global flags shared by all subcommands.
type rootOptions struct {
	tokenPath  string
	configPath string
	envFile    string
	output     string
	debug      bool

	logger *slog.Logger

	// clientOptions are appended when building the calendar client.
	clientOptions []calendar.Option
}

// rootCmd represents the base command for the calendarenv application
var rootCmd = newRootCmd(&rootOptions{})

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calendarenv version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendarenv",
		Short: "Google Calendar evaluation environment",
		Long: `calendarenv drives a Google Calendar account for evaluation runs.

It can run as:
  - A CLI for listing calendars and managing events
  - An MCP (Model Context Protocol) server for evaluation agents`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.tokenPath, "token", "", "Path to the OAuth token file (env: "+envTokenPath+", default: "+google.DefaultTokenPath()+")")
	flags.StringVar(&opts.configPath, "config", "", "Path to the environment JSON config (env: "+envConfigPath+")")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "Output format: json or yaml")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newCalendarsCmd(opts))
	cmd.AddCommand(newEventsCmd(opts))
	cmd.AddCommand(newEnvCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newGenerateDocsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// init loads the dotenv file, resolves paths from the environment and sets
// up logging. Logs go to stderr so stdout stays clean for results and the
// stdio MCP transport.
func (o *rootOptions) init(cmd *cobra.Command) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	if !cmd.Flags().Changed("token") {
		o.tokenPath = getEnvOrDefault(envTokenPath, google.DefaultTokenPath())
	}
	if !cmd.Flags().Changed("config") {
		o.configPath = getEnvOrDefault(envConfigPath, o.configPath)
	}

	if err := validateOutputFormat(o.output); err != nil {
		return err
	}

	o.logger = logging.NewLogger(cmd.ErrOrStderr(), o.debug)
	slog.SetDefault(o.logger)
	return nil
}

// newEnvironment loads the token and config and builds the environment.
func (o *rootOptions) newEnvironment(ctx context.Context, extra ...environment.Option) (*environment.Environment, error) {
	if o.configPath == "" {
		return nil, fmt.Errorf("no environment config given: use --config or %s", envConfigPath)
	}

	envOpts := append([]environment.Option{
		environment.WithLogger(o.logger),
		environment.WithClientOptions(o.clientOptions...),
	}, extra...)

	return environment.New(ctx, o.tokenPath, o.configPath, envOpts...)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
