package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/inventario-odoo/internal/application/inventory"
	"github.com/jhoicas/inventario-odoo/internal/domain/repository"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/odoo"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/inventario-odoo/internal/interfaces/http"
	"github.com/jhoicas/inventario-odoo/pkg/config"
	"github.com/jhoicas/inventario-odoo/pkg/logger"
	"github.com/jhoicas/inventario-odoo/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("odoo", cfg.Odoo.URL).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio para la API")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := odoo.NewInventoryClient(cfg.Odoo.URL, cfg.Odoo.APIKey, cfg.Odoo.Database,
		odoo.WithTimeout(time.Duration(cfg.Odoo.TimeoutSeconds)*time.Second),
		odoo.WithLogger(log),
		odoo.WithMetrics(metrics.NewRPCMetrics(reg)),
	)

	// Almacén de fotos: opcional, solo si hay PostgreSQL configurado.
	ctx := context.Background()
	var snapshotRepo repository.SnapshotRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		repo := postgres.NewSnapshotRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración de snapshots")
		}
		snapshotRepo = repo
	} else {
		log.Warn().Msg("sin DATABASE_URL/DB_HOST: rutas de snapshots deshabilitadas")
	}

	syncUC := inventory.NewSyncUseCase(client, snapshotRepo, report.NewMarotoPDFGenerator(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Duration(cfg.Odoo.TimeoutSeconds+30) * time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(metrics.NewHTTPMetrics(reg)))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory: syncUC,
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
		Gatherer:  reg,
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
