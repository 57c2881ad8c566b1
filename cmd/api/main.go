package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/auth"
	"github.com/tu-usuario/crm-inmobiliario/internal/application/usecase"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/crm-inmobiliario/internal/interfaces/http"
	"github.com/tu-usuario/crm-inmobiliario/pkg/config"
	"github.com/tu-usuario/crm-inmobiliario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// La API actual solo expone auth y catálogo; los clientes viven en el
	// cliente de escritorio y en crmctl.
	var asesorRepo repository.AsesorRepository
	var propiedadRepo repository.PropiedadRepository

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		asesorRepo = postgres.NewAsesorRepository(pool)
		propiedadRepo = postgres.NewPropiedadRepository(pool)
	case config.BackendJSON:
		asesorRepo = jsonstore.NewAsesorRepository(cfg.Store.JSONDir)
		propiedadRepo = jsonstore.NewPropiedadRepository(cfg.Store.JSONDir)
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("backend de persistencia desconocido")
	}

	politica := auth.Politica{
		MinLength:         cfg.Password.MinLength,
		RequiereMayuscula: cfg.Password.RequiereMayuscula,
		RequiereMinuscula: cfg.Password.RequiereMinuscula,
		RequiereDigito:    cfg.Password.RequiereDigito,
	}
	asesorUC := usecase.NewAsesorUseCase(asesorRepo, politica, log.Zerolog())
	if creado, err := asesorUC.EnsureAdminInicial(); err != nil {
		log.Fatal().Err(err).Msg("sembrar cuenta admin")
	} else if creado {
		log.Info().Msg("cuenta admin inicial sembrada")
	}

	propiedadUC := usecase.NewPropiedadUseCase(propiedadRepo, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Asesores:    asesorRepo,
		PropiedadUC: propiedadUC,
		JWT:         cfg.JWT,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
