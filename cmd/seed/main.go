package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/adiprakosa/kasirpos/config"
	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/internal/db"
	"github.com/xuri/excelize/v2"
)

// seedRow is one catalog line from the spreadsheet:
// Name | SKU | Price | Category | MinOrder | Image
type seedRow struct {
	Name     string
	SKU      string
	Price    int64
	Category string
	MinOrder int
	Image    string
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	skipped := 0
	for _, row := range rows {
		category, err := categoryRepo.FindByName(row.Category)
		if err != nil {
			category = &model.Category{Name: row.Category}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatal("Failed to create category:", err)
			}
			fmt.Printf("Created category: %s\n", category.Name)
		}

		if existing, err := productRepo.FindBySKU(row.SKU); err == nil && existing != nil {
			fmt.Printf("Skipping %s (SKU %s already exists)\n", row.Name, row.SKU)
			skipped++
			continue
		}

		product := &model.Product{
			Name:       row.Name,
			SKU:        row.SKU,
			Price:      row.Price,
			Image:      row.Image,
			MinOrder:   row.MinOrder,
			CategoryID: category.ID,
		}
		if err := productRepo.Create(product); err != nil {
			log.Fatal("Failed to create product:", err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Products imported: %d, skipped: %d\n", imported, skipped)
}

func readCatalogFromXLSX(filePath string) ([]seedRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rawRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rawRows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	var rows []seedRow
	// Row 0 is the header
	for i, raw := range rawRows[1:] {
		if len(raw) < 4 {
			fmt.Printf("Skipping row %d: not enough columns\n", i+2)
			continue
		}

		name := strings.TrimSpace(raw[0])
		sku := strings.TrimSpace(raw[1])
		if name == "" || sku == "" {
			fmt.Printf("Skipping row %d: missing name or SKU\n", i+2)
			continue
		}

		price, err := strconv.ParseInt(strings.TrimSpace(raw[2]), 10, 64)
		if err != nil || price <= 0 {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+2, raw[2])
			continue
		}

		row := seedRow{
			Name:     name,
			SKU:      sku,
			Price:    price,
			Category: strings.TrimSpace(raw[3]),
			MinOrder: 1,
		}
		if len(raw) > 4 {
			if minOrder, err := strconv.Atoi(strings.TrimSpace(raw[4])); err == nil && minOrder > 0 {
				row.MinOrder = minOrder
			}
		}
		if len(raw) > 5 {
			row.Image = strings.TrimSpace(raw[5])
		}

		rows = append(rows, row)
	}

	return rows, nil
}
