package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/sitewizard/internal/config"
	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
)

// app carries what the persistent pre-run prepares for subcommands.
type app struct {
	configFile string
	cfg        *config.Config
	logger     logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "sitewizard",
		Short:         "AI website builder served as a live wizard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is ./sitewizard.yaml)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (a *app) initialize() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format(), os.Stderr)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}
