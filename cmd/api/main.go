package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/invoice-generator/internal/app"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/invoice-generator/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/invoice-generator/internal/interfaces/http"
	"github.com/jhoicas/invoice-generator/pkg/config"
	"github.com/jhoicas/invoice-generator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer storage.Close()

	// PDF: sin logo o fuentes legibles no se arranca
	pdfGenerator, err := infrapdf.NewMarotoPDFGenerator(infrapdf.Config{
		LogoPath:       cfg.PDF.LogoPath,
		FontPath:       cfg.PDF.FontPath,
		FontBoldPath:   cfg.PDF.FontBoldPath,
		CurrencyPrefix: cfg.PDF.CurrencyPrefix,
		FooterText:     cfg.PDF.FooterText,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAsset) {
			log.Fatal().Err(err).Str("logo", cfg.PDF.LogoPath).Msg("recursos del PDF")
		}
		log.Fatal().Err(err).Msg("generador PDF")
	}

	appMetrics := metrics.New(cfg.Metrics.Namespace)
	svc := app.NewServices(storage, pdfGenerator, appMetrics, log.Zerolog())

	server := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	server.Use(recover.New())
	server.Use(requestid.New())
	server.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	server.Use(appMetrics.Middleware())
	server.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		server.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Invoice Generator API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger deshabilitado: archivo no encontrado")
	}

	server.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Invoice Generator API is running")
	})
	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	server.Get("/metrics", adaptor.HTTPHandler(appMetrics.Handler()))

	httpRouter.Router(server, httpRouter.RouterDeps{
		CompanyUC:     svc.Companies,
		ProductUC:     svc.Products,
		CustomerUC:    svc.Customers,
		CreateInvoice: svc.Invoices,
		PDFUC:         svc.PDF,
		DashboardUC:   svc.Dashboard,
	})

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
