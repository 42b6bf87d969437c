// migrate aplica las migraciones embebidas (goose) contra la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|status|version|reset]
package main

import (
	"context"
	"os"

	"github.com/Jamxon/Korxona/internal/infrastructure/postgres"
	"github.com/Jamxon/Korxona/pkg/config"
	"github.com/Jamxon/Korxona/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := postgres.Migrate(context.Background(), cfg.DB.ConnectionString(), command); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migraciones")
	}
	log.Info().Str("command", command).Msg("migraciones ejecutadas")
}
