package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jhoicas/energy-billing/internal/bootstrap"
)

func newSeedCmd(e *env) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Importa meters.csv, contracts.csv y readings.csv de un directorio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = e.cfg.Import.SeedDir
			}
			if dir == "" {
				return fmt.Errorf("indique --dir o SEED_DIR")
			}
			svc, err := bootstrap.Open(cmd.Context(), e.cfg, e.log, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer svc.Close()

			files, err := bootstrap.Seed(cmd.Context(), svc.Importer, dir, e.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintf(out, "%-14s insertadas=%d omitidas=%d errores=%d\n",
					f.Name, f.Result.Inserted, f.Result.Skipped, len(f.Result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directorio con los CSV (por defecto SEED_DIR)")
	return cmd
}
