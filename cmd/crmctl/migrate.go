package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/migration"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/postgres"
)

var (
	migrateJSONDir         string
	migrateSinDedupAsesor  bool
	migrateSinDedupCliente bool
	migrateSinDedupProp    bool
)

// migrateCmd copia los datos de los archivos JSON a PostgreSQL. Es
// re-ejecutable: los registros ya presentes en el destino (por clave natural)
// se omiten.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migra los datos del backend JSON a PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}

		dir := migrateJSONDir
		if dir == "" {
			dir = cfg.Store.JSONDir
		}
		origen := migration.Origen{
			Asesores:    jsonstore.NewAsesorRepository(dir),
			Clientes:    jsonstore.NewClienteRepository(dir),
			Propiedades: jsonstore.NewPropiedadRepository(dir),
		}

		claves := migration.ClavesPorDefecto()
		claves.AsesorPorUsername = !migrateSinDedupAsesor
		claves.ClientePorCURP = !migrateSinDedupCliente
		claves.PropiedadPorTituloCiudad = !migrateSinDedupProp

		engine := migration.NewEngine(origen, postgres.NewTxRunner(pool), claves, log.Zerolog())
		reporte, err := engine.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"asesores:    %d migrados, %d omitidos, %d fallidos\n"+
				"clientes:    %d migrados, %d omitidos, %d fallidos\n"+
				"propiedades: %d migrados, %d omitidos, %d fallidos\n",
			reporte.Asesores.Migrados, reporte.Asesores.Omitidos, reporte.Asesores.Fallidos,
			reporte.Clientes.Migrados, reporte.Clientes.Omitidos, reporte.Clientes.Fallidos,
			reporte.Propiedades.Migrados, reporte.Propiedades.Omitidos, reporte.Propiedades.Fallidos,
		)
		if reporte.Asesores.Fallidos+reporte.Clientes.Fallidos+reporte.Propiedades.Fallidos > 0 {
			return fmt.Errorf("la migración terminó con registros fallidos")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateJSONDir, "json-dir", "", "directorio de los archivos JSON de origen (default: STORE_JSON_DIR)")
	migrateCmd.Flags().BoolVar(&migrateSinDedupAsesor, "sin-dedup-asesores", false, "no deduplicar asesores por username")
	migrateCmd.Flags().BoolVar(&migrateSinDedupCliente, "sin-dedup-clientes", false, "no deduplicar clientes por CURP")
	migrateCmd.Flags().BoolVar(&migrateSinDedupProp, "sin-dedup-propiedades", false, "no deduplicar propiedades por título y ciudad")
}
