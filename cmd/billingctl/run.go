package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jhoicas/energy-billing/internal/bootstrap"
	billingdom "github.com/jhoicas/energy-billing/internal/domain/billing"
)

func newRunCmd(e *env) *cobra.Command {
	var period, seedDir string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Factura un periodo (por defecto el mes anterior)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if period == "" {
				period = billingdom.PreviousPeriod(time.Now()).String()
			}
			ctx := cmd.Context()
			svc, err := bootstrap.Open(ctx, e.cfg, e.log, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer svc.Close()

			// Con STORAGE_DRIVER=memory solo tiene sentido tras cargar semillas.
			if seedDir != "" {
				if _, err := bootstrap.Seed(ctx, svc.Importer, seedDir, e.log); err != nil {
					return err
				}
			}

			res, err := svc.RunBilling.Run(ctx, period)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "periodo %s: generadas=%d omitidas=%d fallidas=%d\n",
				res.Period, len(res.Invoices), len(res.Skipped), len(res.Failures))
			for _, inv := range res.Invoices {
				fmt.Fprintf(out, "  %s %s total=%s\n", inv.ContractID, inv.ID, inv.Total.StringFixed(2))
			}
			for _, f := range res.Failures {
				fmt.Fprintf(out, "  FALLO %s: %v\n", f.ContractID, f.Err)
			}
			for _, f := range res.DocumentFailures {
				fmt.Fprintf(out, "  PDF %s: %v\n", f.InvoiceID, f.Err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "periodo YYYY-MM")
	cmd.Flags().StringVar(&seedDir, "seed", "", "directorio de semillas a importar antes de facturar")
	return cmd
}
