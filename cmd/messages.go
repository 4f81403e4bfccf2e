package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtalent/hr-client/internal/message"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show internal announcements",
	RunE:  runMessages,
}

func runMessages(cmd *cobra.Command, _ []string) error {
	for _, m := range message.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n\n", m.Title, m.Body)
	}
	return nil
}
