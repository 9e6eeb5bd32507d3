package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanish/client-go/internal/config"
	"github.com/vanish/client-go/internal/credential"
	"github.com/vanish/client-go/internal/display"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API key stored in the system keyring",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key [KEY]",
	Short: "Store an API key (reads stdin when KEY is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key: %w", err)
			}
			key = line
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}

		store, err := credential.Open()
		if err != nil {
			return err
		}
		if err := store.Set(config.APIKeyCredential, key); err != nil {
			return err
		}
		display.SuccessMsg(cmd.OutOrStdout(), "API key saved to keyring")
		return nil
	},
}

var clearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credential.Open()
		if err != nil {
			return err
		}
		if err := store.Delete(config.APIKeyCredential); err != nil {
			return err
		}
		display.SuccessMsg(cmd.OutOrStdout(), "API key removed from keyring")
		return nil
	},
}

func init() {
	authCmd.AddCommand(setKeyCmd, clearKeyCmd)
	rootCmd.AddCommand(authCmd)
}
