package command

import (
	"strings"

	"github.com/spf13/cobra"

	"tcpecho/cmd/cli/command/client"
)

// sendCmd performs a single exchange without the interactive prompt
var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message and print the reply",
	Long: `Send one message over a new connection, print the server's reply and exit.
Arguments are joined with single spaces. Failures are printed, not returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tcpClient := client.NewTCPClient(cfg.ServerAddr(), cfg.BufferSize, logger)
		payload, err := tcpClient.Exchange(cmd.Context(), strings.Join(args, " "))
		client.Report(cmd.OutOrStdout(), tcpClient.ServerAddr(), payload, err)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
