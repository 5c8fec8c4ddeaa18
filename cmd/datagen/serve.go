package main

import (
	"github.com/spf13/cobra"

	"github.com/neelsbester/lo-phi/api"
)

// newServeCommand creates the serve command.
func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation API server",
		Long: `The serve command starts an HTTP server exposing /health, /version and
POST /generate, so benchmark rigs can drive generation remotely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return api.NewServer().Start(port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "3000", "Port to listen on")

	return cmd
}
