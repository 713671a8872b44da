package main

import (
	"flag"
	"log"

	"hiregate_backend/internal/app"
	"hiregate_backend/internal/config"
)

func main() {
	forceMigrate := flag.Bool("migrate", false, "run database migration before starting")
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ForceMigrate = *forceMigrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	a := app.NewApp(cfg, *configDir)
	if cfg.MigrateOnly {
		log.Println("Migration complete, exiting")
		return
	}
	a.Run()
}
