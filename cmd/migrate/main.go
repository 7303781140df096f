package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"github.com/pixelcraft/studio/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	dbURL := fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		env.GetEnv("DB_USER", "studio"),
		env.GetEnv("DB_PASSWORD", "studio"),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", "studio"),
	)

	log.Info().
		Str("user", env.GetEnv("DB_USER", "studio")).
		Str("host", env.GetEnv("DB_HOST", "127.0.0.1")).
		Str("database", env.GetEnv("DB_NAME", "studio")).
		Msg("[Migrate] connecting")

	m, err := migrate.New(env.GetEnv("MIGRATIONS_PATH", "file://migrations"), dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("[Migrate] init failed")
	}

	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Error().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("[Migrate] close failed")
		}
	}()

	switch command {
	case "up":
		err := m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info().Msg("[Migrate] no change, database is up to date")
		case err != nil:
			log.Fatal().Err(err).Msg("[Migrate] up failed")
		default:
			log.Info().Msg("[Migrate] migrations applied")
		}

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatal().Err(err).Msg("[Migrate] rollback failed")
		}
		log.Info().Msg("[Migrate] rolled back last migration")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal().Msg("[Migrate] goto needs a version number")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatal().Err(err).Msg("[Migrate] invalid version number")
		}

		err = m.Migrate(uint(version))
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info().Uint64("version", version).Msg("[Migrate] no change, already at version")
		case err != nil:
			log.Fatal().Err(err).Uint64("version", version).Msg("[Migrate] goto failed")
		default:
			log.Info().Uint64("version", version).Msg("[Migrate] migrated")
		}

	case "status":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("[Migrate] no migrations applied yet")
			return
		}
		if err != nil {
			log.Fatal().Err(err).Msg("[Migrate] reading version failed")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("[Migrate] current version")

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/migrate/main.go [command]")
	fmt.Println("Commands:")
	fmt.Println("  up     - apply all pending migrations")
	fmt.Println("  down   - roll back the last migration")
	fmt.Println("  goto N - migrate to version N")
	fmt.Println("  status - print the current migration version")
}
