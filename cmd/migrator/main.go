/**
 * @description
 * Database migration runner. Applies the SQL migrations under the migrations
 * directory against the configured Postgres database. Supports migrating up,
 * down, or by a fixed number of steps.
 *
 * Usage:
 *   migrator --dir ./migrations --direction up
 *   migrator --dir ./migrations --direction down --steps 1
 */

package main

import (
	"errors"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"

	"github.com/viteezy/commerce-backend/internal/config"
)

func main() {
	dir := pflag.String("dir", "migrations", "path to the migrations directory")
	direction := pflag.String("direction", "up", "migration direction, up or down")
	steps := pflag.Int("steps", 0, "number of steps to apply, 0 means all")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("level=fatal component=migrator msg=\"could not load config\" error=%v", err)
	}

	// The pgx/v5 driver registers under the pgx5 scheme.
	databaseURL := strings.Replace(cfg.DatabaseURL, "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+*dir, databaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=migrator msg=\"could not create migrator\" error=%v", err)
	}
	defer m.Close()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		log.Fatalf("level=fatal component=migrator msg=\"unknown direction\" direction=%s", *direction)
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Printf("level=info component=migrator msg=\"no migrations to apply\"")
			return
		}
		log.Fatalf("level=fatal component=migrator msg=\"migration failed\" error=%v", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("level=fatal component=migrator msg=\"could not read version\" error=%v", err)
	}
	log.Printf("level=info component=migrator msg=\"migrations applied\" version=%d dirty=%t", version, dirty)
}
