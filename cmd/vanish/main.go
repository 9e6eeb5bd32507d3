package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/vanish/client-go"
	"github.com/vanish/client-go/internal/config"
	"github.com/vanish/client-go/internal/credential"
	"github.com/vanish/client-go/internal/display"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	jsonOutput  bool
	baseURLFlag string
	apiKeyFlag  string

	cfg    *config.Config
	logger *slog.Logger
	client *vanish.Client
)

var rootCmd = &cobra.Command{
	Use:           "vanish",
	Short:         "vanish - disposable email addresses from the command line",
	Long:          "Generate temporary addresses, read the mail they receive and wait for new messages.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "version", "auth", "set-key", "clear-key":
			return nil
		}

		var err error
		cfg, err = config.Load(credential.Get)
		if err != nil {
			return err
		}
		if baseURLFlag != "" {
			cfg.BaseURL = baseURLFlag
		}
		if apiKeyFlag != "" {
			cfg.APIKey = apiKeyFlag
		}

		logger = setupLogger(cmd.ErrOrStderr(), cfg.Level(), cfg.LogFormat)

		client, err = vanish.New(
			vanish.WithBaseURL(cfg.BaseURL),
			vanish.WithAPIKey(cfg.APIKey),
			vanish.WithTimeout(cfg.Timeout),
			vanish.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		logger.Debug("client ready", "url", client.BaseURL(), "api_key_set", cfg.APIKey != "")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vanish version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "url", "", "API base URL (overrides VANISH_URL)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key (overrides VANISH_API_KEY and the keyring)")

	rootCmd.AddCommand(versionCmd)
}

func setupLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}
	return slog.New(handler)
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		display.ErrorMsg(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
