package command

// root.go defines the root command for the tcpecho client.
// The bare command runs the interactive send/receive loop.

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tcpecho/cmd/cli/command/client"
	"tcpecho/internal/config"
	"tcpecho/internal/shared"
)

var (
	host string // overrides ECHO_HOST
	port int    // overrides ECHO_PORT

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tcpecho",
	Short: "tcpecho - interactive TCP echo client",
	Long: `tcpecho sends each line you type to the echo server over a new TCP
connection and prints the reply. Type "exit" to quit.

The target defaults to localhost:8080 and can be changed with --host/--port
or the ECHO_HOST / ECHO_PORT environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		tcpClient := client.NewTCPClient(cfg.ServerAddr(), cfg.BufferSize, logger)
		session := client.NewSession(tcpClient, cmd.InOrStdin(), cmd.OutOrStdout())
		return session.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "server host (default from ECHO_HOST or localhost)")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "server port (default from ECHO_PORT or 8080)")
}

// loadConfig reads env config, applies flag overrides and sets up the stderr logger
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("host") {
		loaded.Host = host
	}
	if cmd.Flags().Changed("port") {
		loaded.Port = port
	}
	if err := loaded.ValidateClient(); err != nil {
		return err
	}

	cfg = loaded
	logger = shared.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return nil
}
