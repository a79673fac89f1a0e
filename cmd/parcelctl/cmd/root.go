// Package cmd implements the parcelctl CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rowneywebster/joyful-cargoparcels/internal/config"
	"github.com/rowneywebster/joyful-cargoparcels/internal/version"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/apiclient"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/backoffice"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/clierror"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/routeguard"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/session"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/tokenstore"
)

var (
	// Global flags
	outputFormat string
	serverURL    string
	configDir    string

	// Shared wiring, built in PersistentPreRunE
	cfg      *config.Config
	logger   *slog.Logger
	store    tokenstore.Store
	authSvc  *authapi.Service
	sessions *session.Manager
	office   *backoffice.Client
	guard    *routeguard.Guard
)

var rootCmd = &cobra.Command{
	Use:   "parcelctl",
	Short: "Back-office CLI for parcel delivery operations",
	Long: `parcelctl is a command-line interface for the parcel delivery
back-office API.

It manages parcels, postponed orders, expenses, user accounts,
business settings, and dashboard summaries. Sessions are stored
locally and refreshed automatically when the access token expires.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for commands that never touch the backend
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return setup()
	},
}

// setup loads config and builds the shared clients. No network calls
// happen here; commands initialize the session themselves.
func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}

	logger = newLogger(cfg.LogLevel)

	credPath, err := cfg.CredentialsPath()
	if err != nil {
		return err
	}
	store, err = tokenstore.NewFileStore(filepath.Dir(credPath))
	if err != nil {
		return err
	}

	authSvc = authapi.NewService(cfg.ServerURL)
	sessions = session.NewManager(authSvc, store, session.WithLogger(logger))

	api := apiclient.New(cfg.ServerURL,
		apiclient.WithTokenProvider(sessions),
		apiclient.WithRefresher(sessions),
		apiclient.WithTimeout(cfg.Timeout),
	)
	office = backoffice.NewClient(api)

	guard, err = routeguard.New(routeguard.DefaultRoutes(), routeguard.WithLogger(logger))
	if err != nil {
		return err
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// requireSession initializes the session from stored credentials and
// fails unless a user is signed in.
func requireSession(ctx context.Context) error {
	if err := sessions.Initialize(ctx); err != nil {
		return err
	}
	if !sessions.Current().IsAuthenticated() {
		return clierror.NotAuthenticated()
	}
	return nil
}

// requireRoute initializes the session and checks the route guard for
// the named screen.
func requireRoute(ctx context.Context, route string) error {
	if err := sessions.Initialize(ctx); err != nil {
		return err
	}
	switch guard.Evaluate(sessions.Current(), route) {
	case routeguard.DecisionAdmit:
		return nil
	case routeguard.DecisionForbidden:
		return clierror.Forbidden(route)
	default:
		return clierror.NotAuthenticated()
	}
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for parcelctl.

To load completions:

Bash:
  # Add to ~/.bashrc:
  source <(parcelctl completion bash)

Zsh:
  # Add to ~/.zshrc:
  source <(parcelctl completion zsh)

Fish:
  # Add to ~/.config/fish/completions/:
  parcelctl completion fish > ~/.config/fish/completions/parcelctl.fish

PowerShell:
  # Add to your PowerShell profile:
  parcelctl completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unknown shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend base URL (default: $PARCELCTL_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Credentials directory (default: ~/.config/parcelctl)")
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// OutputFormat reports the selected output format for error rendering.
func OutputFormat() string {
	return outputFormat
}

// formatOutput handles output formatting based on the --output flag.
func formatOutput(data interface{}) error {
	switch outputFormat {
	case "json":
		return outputJSON(data)
	case "yaml":
		return outputYAML(data)
	default:
		// Table format is handled by each command
		return nil
	}
}

func outputJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func outputYAML(data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
