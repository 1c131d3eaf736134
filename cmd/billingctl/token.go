package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/energy-billing/pkg/jwt"
)

func newTokenCmd(e *env) *cobra.Command {
	var subject, role string
	var expMinutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token Bearer para las rutas de escritura de la API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subject == "" {
				return fmt.Errorf("--subject obligatorio")
			}
			if expMinutes <= 0 {
				expMinutes = e.cfg.JWT.Expiration
			}
			tok, err := pkgjwt.Generate(e.cfg.JWT.Secret, subject, role, e.cfg.JWT.Issuer, expMinutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "identificador del operador")
	cmd.Flags().StringVar(&role, "role", pkgjwt.RoleOperator, "rol del token")
	cmd.Flags().IntVar(&expMinutes, "exp", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
