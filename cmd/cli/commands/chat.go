package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// GetChatCmd returns the chat command
func GetChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a natural-language command or meeting transcript",
		Long: `Sends free-form text to the interpretation engine. Short messages are treated
as single commands; long texts with meeting traits are analyzed as transcripts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := apiClient.Chat(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(report)
			return nil
		},
	}
}
