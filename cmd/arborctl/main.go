// arborctl is the operations CLI for the arbor service: database migrations
// and demo data seeding.
package main

import (
	"log"
	"os"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ramsey-B/arbor/config"
)

var cfg config.Config
var logger ectologger.Logger

var rootCmd = &cobra.Command{
	Use:   "arborctl",
	Short: "Operations CLI for the arbor service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		if err := ectoenv.BindEnv(&cfg); err != nil {
			return err
		}

		zapLogger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = zapadapter.NewZapEctoLogger(zapLogger, nil)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
