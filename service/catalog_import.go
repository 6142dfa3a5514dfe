package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"coffeeshop/model"
	"coffeeshop/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportSheet is the preferred sheet name; the first sheet is used when absent.
const ImportSheet = "Coffee"

type ImportReport struct {
	Rows     int
	Imported int
	Skipped  int
}

// ImportCatalog reads rows of type | name | description | image | size | price
// (first row is a header) and upserts types, coffees and size tiers in one
// transaction. Malformed rows are skipped.
func (s *CatalogService) ImportCatalog(ctx context.Context, r io.Reader) (*ImportReport, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer xl.Close()

	sheet := ImportSheet
	if idx, err := xl.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = xl.GetSheetName(0)
	}
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, invalid("EMPTY_WORKBOOK", "Workbook must have at least one row of data")
	}

	report := &ImportReport{}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		coffees := map[string]*model.Coffee{}
		for i, row := range rows[1:] {
			report.Rows++
			line := i + 2

			rec, ok := parseImportRow(row)
			if !ok {
				log.Printf("catalog import: row %d skipped: %v", line, row)
				report.Skipped++
				continue
			}

			coffeeType, err := tx.Coffees.UpsertType(ctx, rec.typeLabel)
			if err != nil {
				return err
			}

			coffee, seen := coffees[rec.name]
			if !seen {
				coffee = &model.Coffee{
					TypeID:      coffeeType.ID,
					Name:        rec.name,
					Description: rec.description,
					ImageName:   rec.image,
				}
				if err := tx.Coffees.UpsertCoffee(ctx, coffee); err != nil {
					return err
				}
				coffees[rec.name] = coffee
			}

			if err := tx.Coffees.UpsertSize(ctx, coffee.ID, rec.size, rec.price); err != nil {
				return err
			}
			report.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type importRow struct {
	typeLabel   string
	name        string
	description string
	image       string
	size        string
	price       decimal.Decimal
}

func parseImportRow(row []string) (importRow, bool) {
	if len(row) < 6 {
		return importRow{}, false
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	rec := importRow{
		typeLabel:   row[0],
		name:        row[1],
		description: row[2],
		image:       row[3],
		size:        row[4],
	}
	if rec.typeLabel == "" || rec.name == "" || rec.size == "" {
		return importRow{}, false
	}
	price, err := decimal.NewFromString(row[5])
	if err != nil || price.IsNegative() {
		return importRow{}, false
	}
	rec.price = price.Round(2)
	return rec, true
}
