// Package commands implements the logbook CLI commands
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/logbookhq/logbook/internal/api/v1/client"
)

// flag names
const (
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "LOGBOOK_SERVER_ADDRESS"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient() error {
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	var err error
	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", client.DefaultBaseURL,
		"Address of the logbook API server (env: LOGBOOK_SERVER_ADDRESS)")

	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetTasksCmd())
	RootCmd.AddCommand(GetChatCmd())
	RootCmd.AddCommand(GetReportsCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "logbook",
	Short: "Logbook CLI - A command line interface for the logbook API",
	Long: `Logbook CLI is a command line tool for managing projects and tasks through the logbook API,
including natural-language commands routed through the chat endpoint.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// The flag wins over the environment variable
		if !cmd.Flags().Changed(flagServerAddress) {
			if addr := os.Getenv(envServerAddress); addr != "" {
				serverAddress = addr
			}
		}
		return initClient()
	},
}
