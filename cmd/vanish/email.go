package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vanish/client-go/internal/display"
)

var (
	showLinks    bool
	attachOutput string
)

var showCmd = &cobra.Command{
	Use:   "show EMAIL_ID",
	Short: "Display an email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := client.GetEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get email: %w", err)
		}

		if showLinks {
			links := email.Links()
			if jsonOutput {
				return printJSON(cmd, map[string][]string{"links": links})
			}
			for _, link := range links {
				fmt.Fprintln(cmd.OutOrStdout(), link)
			}
			return nil
		}

		if jsonOutput {
			return printJSON(cmd, email)
		}
		display.Email(cmd.OutOrStdout(), email)
		return nil
	},
}

var attachmentCmd = &cobra.Command{
	Use:   "attachment EMAIL_ID ATTACHMENT_ID",
	Short: "Download an attachment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		att, err := client.GetAttachment(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("get attachment: %w", err)
		}

		path := attachOutput
		if path == "" {
			path = att.Filename
		}
		if path == "" {
			path = args[1]
		}
		if path == "-" {
			_, err := cmd.OutOrStdout().Write(att.Content)
			return err
		}
		path = filepath.Clean(path)

		if err := os.WriteFile(path, att.Content, 0o644); err != nil {
			return fmt.Errorf("write attachment: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, map[string]any{
				"path":        path,
				"size":        len(att.Content),
				"contentType": att.ContentType,
			})
		}
		display.SuccessMsg(cmd.OutOrStdout(), "Saved %s (%s)", path, display.Size(int64(len(att.Content))))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete EMAIL_ID",
	Short: "Delete an email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := client.DeleteEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete email: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, map[string]bool{"success": ok})
		}
		if !ok {
			return fmt.Errorf("server did not confirm deletion of %s", args[0])
		}
		display.SuccessMsg(cmd.OutOrStdout(), "Deleted %s", args[0])
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showLinks, "links", false, "Print only the links found in the HTML body")
	attachmentCmd.Flags().StringVarP(&attachOutput, "output", "o", "", "Output file, or - for stdout (default: the attachment filename)")

	rootCmd.AddCommand(showCmd, attachmentCmd, deleteCmd)
}
