package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/almahera/storefront/internal/constants"
)

var configName string

var rootCmd = &cobra.Command{
	Use:   constants.AppName,
	Short: "Storefront cart-to-order backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the http server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an admin user and sample products",
	Run: func(cmd *cobra.Command, args []string) {
		RunSeed(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&configName, "config", constants.AppName, "config file name under ./env without extension")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func Execute(c context.Context) error {
	return rootCmd.ExecuteContext(c)
}
