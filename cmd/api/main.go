package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/painel-financeiro/docs"
	"github.com/jhoicas/painel-financeiro/internal/bootstrap"
	infrapdf "github.com/jhoicas/painel-financeiro/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/painel-financeiro/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/painel-financeiro/internal/interfaces/http"
	"github.com/jhoicas/painel-financeiro/pkg/config"
	"github.com/jhoicas/painel-financeiro/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Painel Financeiro API
// @version                     1.0
// @description                 Panel financiero consolidado del grupo: consolidación mensual, saldos bancarios, conciliación y alertas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer
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
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer c.Close()

	if cfg.Scheduler.Enabled {
		if err := c.Scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar scheduler de alertas")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // reportes PDF/XLSX del grupo completo
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	mountDocs(app, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		Consolidation: httpRouter.NewConsolidationHandler(c.Consolidation,
			infrapdf.NewGroupReportGenerator(), infraxlsx.NewGroupReportExporter()),
		Balances:       httpRouter.NewBalanceHandler(c.Balances),
		Reconciliation: httpRouter.NewReconciliationHandler(c.Reconciliation, c.Location),
		Alerts:         httpRouter.NewAlertHandler(c.Alerts, c.Scheduler),
		Realtime:       httpRouter.NewRealtimeHandler(c.Hub, log.Component("sse")),
		Health:         httpRouter.NewHealthHandler(c.Pool, c.Scheduler),
		JWTSecret:      cfg.JWT.Secret,
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

// mountDocs publica la UI de Swagger en /docs. Sin el archivo en disco (binario fuera del repo)
// se sirve solo el documento embebido.
func mountDocs(app *fiber.App, log *logger.Logger) {
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
		return
	}
	log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, se sirve el documento embebido")
	app.Get("/docs/swagger.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})
}
