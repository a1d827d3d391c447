package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"trustlens-be/internal/bootstrap"
	"trustlens-be/internal/config"
	"trustlens-be/internal/entity"
	"trustlens-be/internal/service"
	"trustlens-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// manifestEntry mirrors the analyze API request shape so the same manifest
// can be replayed against either entrypoint.
type manifestEntry struct {
	DocPath string `json:"doc_path"`
	DocId   string `json:"doc_id"`
	Version int    `json:"version"`
	DocType string `json:"doc_type"`
}

func main() {
	manifestPath := flag.String("manifest", "documents.json", "path to the JSON document manifest")
	flag.Parse()

	cfg := config.Load()

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

	docs, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Error: failed to load manifest %s: %v", *manifestPath, err)
	}

	banner := color.New(color.Bold, color.FgCyan)
	banner.Println("TRUSTLENS: Risk & Contract Intelligence")

	results := container.PipelineService.ProcessBatch(context.Background(), docs)
	printReport(results)
}

func loadManifest(path string) ([]entity.DocumentInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	docs := make([]entity.DocumentInput, len(entries))
	for i, e := range entries {
		docs[i] = entity.DocumentInput{
			DocPath: e.DocPath,
			Metadata: entity.DocumentMetadata{
				DocId:   e.DocId,
				Version: e.Version,
				DocType: e.DocType,
			},
		}
	}
	return docs, nil
}

func printReport(results []service.DocumentResult) {
	okColor := color.New(color.FgGreen)
	warnColor := color.New(color.FgYellow)
	errColor := color.New(color.FgRed)

	for _, r := range results {
		color.New(color.Bold).Printf("\n[>] %s (doc_id=%s v%d)\n", r.Input.DocPath, r.Input.Metadata.DocId, r.Input.Metadata.Version)

		if r.Err != nil {
			errColor.Printf("    [x] %v\n", r.Err)
			continue
		}
		if len(r.Events) == 0 {
			okColor.Println("    [ok] No drift detected")
			continue
		}

		warnColor.Printf("    [!] %d drift event(s)\n", len(r.Events))
		for _, ev := range r.Events {
			color.New(color.Bold).Println("\n--- DRIFT EVENT ---")
			color.New(color.FgWhite).Printf("Change: %s\n", ev.Type)
			riskColor(ev.Risk).Printf("Risk: %s\n", ev.Risk)
			color.New(color.FgWhite).Printf("Explanation:\n%s\n", ev.Explanation)
		}
	}
}

func riskColor(risk entity.RiskLevel) *color.Color {
	switch risk {
	case entity.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case entity.RiskMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
