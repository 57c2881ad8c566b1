package main

import (
	"github.com/spf13/cobra"

	"github.com/tu-usuario/crm-inmobiliario/pkg/config"
	"github.com/tu-usuario/crm-inmobiliario/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "Utilidades de operación del CRM inmobiliario",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}
