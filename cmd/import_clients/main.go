// import_clients carga clientes desde un CSV exportado de una hoja de cálculo.
//
// Uso: go run ./cmd/import_clients <clientes.csv> [utf-8|latin1] [--dry-run]
// Columnas esperadas (con encabezado): nombre, rubro, email, telefono, direccion, notas.
// El separador (coma o punto y coma) se detecta en el encabezado. Las filas inválidas se
// reportan y se omiten; con --dry-run solo se validan.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: import_clients <clientes.csv> [utf-8|latin1] [--dry-run]")
		os.Exit(2)
	}
	path := os.Args[1]
	encoding, dryRun := "utf-8", false
	for _, a := range os.Args[2:] {
		switch {
		case a == "--dry-run":
			dryRun = true
		default:
			encoding = strings.ToLower(a)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if isLatin1(encoding) {
		in = latin1Reader(f)
	}
	rows, rejected, err := ReadClients(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, r := range rejected {
		fmt.Fprintf(os.Stderr, "fila %d omitida: %v\n", r.Line, r.Err)
	}
	fmt.Printf("%d clientes válidos, %d filas omitidas\n", len(rows), len(rejected))
	if dryRun {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clients := usecase.NewClientUseCase(postgres.NewClientRepository(pool), usecase.NewRunner(log, cfg.Retry))
	imported := 0
	for _, r := range rows {
		if _, err := clients.Create(ctx, r.Request); err != nil {
			log.Error().Err(err).Int("line", r.Line).Msg("importar cliente")
			continue
		}
		imported++
	}
	log.Info().Int("importados", imported).Int("omitidos", len(rows)-imported+len(rejected)).Msg("importación terminada")
}
