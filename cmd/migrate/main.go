package main

import (
	"log"
	"os"

	"trustlens-be/internal/model"
	"trustlens-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.ClauseEmbedding{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// ANN index for the cosine-distance query. Built after AutoMigrate so the
	// column definitely exists.
	log.Println("Step 3: Ensuring vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_clause_embeddings_vector
		ON clause_embeddings USING ivfflat (embedding_value vector_cosine_ops) WITH (lists = 100);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create ivfflat index: %v", err)
	}

	log.Println("Migration complete")
}
