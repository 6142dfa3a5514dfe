// Command catalogimport seeds the coffee catalog from an .xlsx workbook.
//
// Expected columns, after a header row: type | name | description | image | size | price.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"coffeeshop/config"
	"coffeeshop/database"
	"coffeeshop/repository"
	"coffeeshop/service"
)

func main() {
	path := flag.String("file", "", "path to the catalog workbook (.xlsx)")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDatabase(cfg.DatabaseDSN, true)
	if err != nil {
		log.Fatalf("Database initialisation failed: %v", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Unable to open workbook: %v", err)
	}
	defer file.Close()

	catalog := service.NewCatalogService(repository.NewStore(db))
	report, err := catalog.ImportCatalog(context.Background(), file)
	if err != nil {
		log.Fatalf("Catalog import failed: %v", err)
	}
	log.Printf("Catalog import finished: %d rows, %d imported, %d skipped", report.Rows, report.Imported, report.Skipped)
}
