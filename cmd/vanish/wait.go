package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanish/client-go"
	"github.com/vanish/client-go/internal/display"
)

// errNoEmail makes wait exit non-zero on timeout.
var errNoEmail = errors.New("no new email")

var (
	waitTimeout      time.Duration
	waitInterval     time.Duration
	waitInitialCount int
	waitIgnoreErrors bool
)

var waitCmd = &cobra.Command{
	Use:   "wait ADDRESS",
	Short: "Wait for a new email to arrive in a mailbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []vanish.PollOption{
			vanish.WithPollTimeout(cfg.PollTimeout),
			vanish.WithPollInterval(cfg.PollInterval),
		}
		if cmd.Flags().Changed("timeout") {
			opts = append(opts, vanish.WithPollTimeout(waitTimeout))
		}
		if cmd.Flags().Changed("interval") {
			opts = append(opts, vanish.WithPollInterval(waitInterval))
		}
		if cmd.Flags().Changed("initial-count") {
			opts = append(opts, vanish.WithInitialCount(waitInitialCount))
		}
		if waitIgnoreErrors {
			opts = append(opts, vanish.WithPollErrorPolicy(vanish.PollErrorIgnore))
		}

		logger.Info("waiting for email", "address", args[0])
		email, err := client.PollForNewEmail(cmd.Context(), args[0], opts...)
		if err != nil {
			return fmt.Errorf("wait for email: %w", err)
		}
		if email == nil {
			if jsonOutput {
				if err := printJSON(cmd, map[string]any{"email": nil}); err != nil {
					return err
				}
			}
			return fmt.Errorf("%w for %s", errNoEmail, args[0])
		}

		if jsonOutput {
			return printJSON(cmd, map[string]any{"email": email})
		}
		display.EmailRow(cmd.OutOrStdout(), *email)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch ADDRESS...",
	Short: "Print every new email of one or more mailboxes until interrupted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := cfg.PollInterval
		if cmd.Flags().Changed("interval") {
			interval = waitInterval
		}

		events, err := client.WatchMailboxes(cmd.Context(), args,
			vanish.WithPollInterval(interval), vanish.WithPollTimeout(0))
		if err != nil {
			return err
		}
		logger.Info("watching mailboxes", "count", len(args))

		for ev := range events {
			if jsonOutput {
				if err := printJSON(cmd, ev); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.Bold.Render(ev.Address))
			display.EmailRow(cmd.OutOrStdout(), *ev.Email)
		}
		return nil
	},
}

func init() {
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 0, "How long to wait (default VANISH_POLL_TIMEOUT)")
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 0, "Delay between checks (default VANISH_POLL_INTERVAL)")
	waitCmd.Flags().IntVar(&waitInitialCount, "initial-count", 0, "Baseline email count (default: current count)")
	waitCmd.Flags().BoolVar(&waitIgnoreErrors, "ignore-errors", false, "Keep polling when a check fails")

	watchCmd.Flags().DurationVar(&waitInterval, "interval", 0, "Delay between checks (default VANISH_POLL_INTERVAL)")

	rootCmd.AddCommand(waitCmd, watchCmd)
}
