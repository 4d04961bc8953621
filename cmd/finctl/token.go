package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/painel-financeiro/pkg/config"
	"github.com/jhoicas/painel-financeiro/pkg/jwt"
)

// newTokenCmd emite un JWT firmado con JWT_SECRET para operadores e integraciones.
func newTokenCmd(e *env) *cobra.Command {
	var userID, role string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token de acceso para la API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != jwt.RoleAdmin && role != jwt.RoleUser {
				return fmt.Errorf("--role debe ser %q o %q", jwt.RoleAdmin, jwt.RoleUser)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.out, tok)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "usuario", "operador", "Identificador del usuario (claim user_id)")
	cmd.Flags().StringVar(&role, "role", jwt.RoleUser, "Rol: admin | user")
	cmd.Flags().IntVar(&minutes, "minutos", 0, "Validez en minutos; por defecto JWT_EXPIRATION_MINUTES")
	return cmd
}
