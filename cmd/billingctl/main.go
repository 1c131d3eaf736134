// billingctl herramienta de operación: migraciones, carga de semillas, facturación y tokens.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/energy-billing/pkg/config"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// env configuración y logger compartidos por los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "billingctl",
		Short:         "Operación del motor de facturación eléctrica",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newRunCmd(e),
		newTokenCmd(e),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("error:", err)
		os.Exit(1)
	}
}
