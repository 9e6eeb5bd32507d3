package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanish/client-go"
	"github.com/vanish/client-go/internal/display"
)

var (
	generateDomain string
	generatePrefix string
	listLimit      int
	listCursor     string
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains addresses can be generated under",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		domains, err := client.GetDomains(cmd.Context())
		if err != nil {
			return fmt.Errorf("get domains: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, map[string][]string{"domains": domains})
		}
		for _, d := range domains {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new disposable address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := client.GenerateEmail(cmd.Context(),
			vanish.WithDomain(generateDomain), vanish.WithPrefix(generatePrefix))
		if err != nil {
			return fmt.Errorf("generate address: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, map[string]string{"email": address})
		}
		fmt.Fprintln(cmd.OutOrStdout(), address)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list ADDRESS",
	Short: "List the emails of a mailbox, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := client.ListEmails(cmd.Context(), args[0],
			vanish.WithLimit(listLimit), vanish.WithCursor(listCursor))
		if err != nil {
			return fmt.Errorf("list emails: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, page)
		}
		display.EmailList(cmd.OutOrStdout(), args[0], page)
		return nil
	},
}

var deleteMailboxCmd = &cobra.Command{
	Use:   "delete-mailbox ADDRESS",
	Short: "Delete every email of a mailbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := client.DeleteMailbox(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete mailbox: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, map[string]int{"deleted": n})
		}
		display.SuccessMsg(cmd.OutOrStdout(), "Deleted %d emails from %s", n, args[0])
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateDomain, "domain", "", "Domain for the address (see 'vanish domains')")
	generateCmd.Flags().StringVar(&generatePrefix, "prefix", "", "Local-part prefix")

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Page size (1-100)")
	listCmd.Flags().StringVar(&listCursor, "cursor", "", "Cursor of the page to fetch")

	rootCmd.AddCommand(domainsCmd, generateCmd, listCmd, deleteMailboxCmd)
}
