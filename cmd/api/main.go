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
	"golang.org/x/text/language"

	_ "github.com/jhoicas/Proyectos-api/docs"
	appanalytics "github.com/jhoicas/Proyectos-api/internal/application/analytics"
	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Proyectos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Proyectos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Proyectos-api/internal/interfaces/http"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

// @title                       Proyectos API
// @version                     1.0.0
// @description                 Panel de administración de proyectos y portal de clientes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.NewTxRunner(pool).MigrateTx(ctx); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	clientRepo := postgres.NewClientRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	meetingRepo := postgres.NewMeetingRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	modRepo := postgres.NewModificacionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	run := usecase.NewRunner(log.Component("usecase"), cfg.Retry)

	// PDF: reporte de estado del proyecto con montos en formato es
	reports := infrapdf.NewReportGenerator(language.Spanish)

	httpLog := log.Component("http")
	projectUC := usecase.NewProjectUseCase(projectRepo, clientRepo, paymentRepo, reports, run)
	authUC := auth.NewAuthUseCase(userRepo, projectUC, cfg.JWT, run, log.Component("auth"))
	deps := httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       usecase.NewClientUseCase(clientRepo, run),
		ProjectUC:      projectUC,
		PaymentUC:      usecase.NewPaymentUseCase(paymentRepo, projectRepo, run),
		MeetingUC:      usecase.NewMeetingUseCase(meetingRepo, projectRepo, run),
		MessageUC:      usecase.NewMessageUseCase(messageRepo, projectRepo, run),
		ModificacionUC: usecase.NewModificacionUseCase(modRepo, projectRepo, run),
		HealthUC:       usecase.NewHealthUseCase(pool, cfg.App),
		DashboardUC:    appanalytics.NewDashboardUseCase(postgres.NewDashboardRepository(pool), run),
		Responder:      httpRouter.NewResponder(cfg.App.IsDevelopment(), httpLog),
		Cookies: httpRouter.CookieConfig{
			Secure:        cfg.HTTP.CookieSecure,
			AccessMaxAge:  time.Duration(cfg.JWT.Expiration) * time.Minute,
			RefreshMaxAge: time.Duration(cfg.JWT.RefreshExpiration) * time.Minute,
		},
		RateLimit: cfg.RateLimit,
		StaticDir: cfg.HTTP.StaticDir,
		Log:       httpLog,
	}

	// Contadores del rate limiter en Redis si está configurado; si no, en memoria.
	if cfg.Redis.Addr != "" {
		storage, err := infraredis.New(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer storage.Close()
		deps.LimiterStorage = storage
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    1 << 20,
		ErrorHandler: deps.Responder.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Proyectos API",
	}))

	httpRouter.Router(app, deps)

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
