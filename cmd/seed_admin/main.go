// seed_admin crea la cuenta de administrador inicial si todavía no existe.
//
// Uso: go run ./cmd/seed_admin <email> <password> [nombre]
// Sin argumentos toma ADMIN_EMAIL, ADMIN_PASSWORD y ADMIN_NAME del entorno.
// Aplica las migraciones antes de crear la cuenta si DB_MIGRATE=true.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

func main() {
	email, password, nombre := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"), os.Getenv("ADMIN_NAME")
	if len(os.Args) > 2 {
		email, password = os.Args[1], os.Args[2]
	}
	if len(os.Args) > 3 {
		nombre = os.Args[3]
	}
	if nombre == "" {
		nombre = "Administrador"
	}
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <email> <password> [nombre]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.NewTxRunner(pool).MigrateTx(ctx); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	run := usecase.NewRunner(log, cfg.Retry)
	// sin resolución de códigos: solo se usa EnsureAdmin
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), nil, cfg.JWT, run, log)

	created, err := authUC.EnsureAdmin(ctx, email, password, nombre)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	if created {
		log.Info().Msg("administrador creado")
		return
	}
	log.Info().Msg("el administrador ya existía, sin cambios")
}
