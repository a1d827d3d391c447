package main

import (
	"context"
	"log"

	"trustlens-be/internal/bootstrap"
	"trustlens-be/internal/config"
	"trustlens-be/internal/server"
	"trustlens-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	// The database is only required for the pgvector backend; the container
	// falls back to the in-memory store when it cannot connect.
	var db *gorm.DB
	if cfg.Vector.Backend == "pgvector" && cfg.Database.Connection != "" {
		gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Printf("Warn: unable to connect to GORM DB: %v", err)
		} else {
			db = gormDB
		}
	}

	container := bootstrap.NewContainer(db, cfg)

	go func() {
		log.Println("Background: starting drift event consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
