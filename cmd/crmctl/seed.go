package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/auth"
	"github.com/tu-usuario/crm-inmobiliario/internal/application/usecase"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/postgres"
	"github.com/tu-usuario/crm-inmobiliario/pkg/config"
)

// seedCmd siembra la cuenta admin inicial en el backend configurado.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Siembra la cuenta admin inicial si no existe",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var asesores repository.AsesorRepository
		switch cfg.Store.Backend {
		case config.BackendPostgres:
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				return fmt.Errorf("crear esquema: %w", err)
			}
			asesores = postgres.NewAsesorRepository(pool)
		case config.BackendJSON:
			asesores = jsonstore.NewAsesorRepository(cfg.Store.JSONDir)
		default:
			return fmt.Errorf("backend de persistencia desconocido: %q", cfg.Store.Backend)
		}

		uc := usecase.NewAsesorUseCase(asesores, auth.PoliticaPorDefecto(), log.Zerolog())
		creado, err := uc.EnsureAdminInicial()
		if err != nil {
			return err
		}
		if creado {
			fmt.Fprintln(cmd.OutOrStdout(), "cuenta admin creada; la contraseña temporal debe cambiarse en el primer login")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "la cuenta admin ya existe; nada que hacer")
		}
		return nil
	},
}
