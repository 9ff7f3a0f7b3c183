package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// Scenario file names inside a scenario directory
const (
	MaterialsFile = "materials.csv"
	ProductsFile  = "products.csv"
	VariantsFile  = "variants.csv"
)

var (
	materialsHeader = []string{"material_id", "supply"}
	productsHeader  = []string{"product_key", "material_id", "material_amount", "priority", "work_complexity"}
	variantsHeader  = []string{"product_key", "material_id", "material_amount", "work_complexity"}
)

// MaterialRow is one line of materials.csv
type MaterialRow struct {
	ID     entities.MaterialID
	Supply decimal.Decimal
}

// ProductRow is one line of products.csv. Key only names the product inside
// the scenario; the catalog assigns the real id.
type ProductRow struct {
	Key            string
	MaterialID     entities.MaterialID
	MaterialAmount decimal.Decimal
	Priority       entities.Priority
	WorkComplexity decimal.Decimal
}

// VariantRow is one line of variants.csv
type VariantRow struct {
	ProductKey     string
	MaterialID     entities.MaterialID
	MaterialAmount decimal.Decimal
	WorkComplexity decimal.Decimal
}

// Loader handles loading production scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario reads materials.csv, products.csv and the optional
// variants.csv from dir.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	materials, err := l.LoadMaterials(filepath.Join(dir, MaterialsFile))
	if err != nil {
		return nil, err
	}
	products, err := l.LoadProducts(filepath.Join(dir, ProductsFile))
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{Materials: materials, Products: products}

	variantsPath := filepath.Join(dir, VariantsFile)
	if _, err := os.Stat(variantsPath); errors.Is(err, os.ErrNotExist) {
		return scenario, nil
	}
	scenario.Variants, err = l.LoadVariants(variantsPath)
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

// LoadMaterials loads materials from a CSV file
func (l *Loader) LoadMaterials(filename string) ([]MaterialRow, error) {
	records, err := readRecords(filename, "materials", materialsHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]MaterialRow, 0, len(records))
	for i, record := range records {
		id, err := parseMaterialID(record[0])
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		supply, err := parseQuantity("supply", record[1])
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		rows = append(rows, MaterialRow{ID: id, Supply: supply})
	}
	return rows, nil
}

// LoadProducts loads products from a CSV file
func (l *Loader) LoadProducts(filename string) ([]ProductRow, error) {
	records, err := readRecords(filename, "products", productsHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]ProductRow, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, record := range records {
		row, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		if seen[row.Key] {
			return nil, fmt.Errorf("products CSV row %d: duplicate product_key %q", i+2, row.Key)
		}
		seen[row.Key] = true
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadVariants loads additional product variants from a CSV file
func (l *Loader) LoadVariants(filename string) ([]VariantRow, error) {
	records, err := readRecords(filename, "variants", variantsHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]VariantRow, 0, len(records))
	for i, record := range records {
		row, err := parseVariant(record)
		if err != nil {
			return nil, fmt.Errorf("variants CSV row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readRecords returns the data rows of a CSV file after checking its header
// and column counts.
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseProduct(record []string) (ProductRow, error) {
	key := strings.TrimSpace(record[0])
	if key == "" {
		return ProductRow{}, fmt.Errorf("empty product_key")
	}

	materialID, err := parseMaterialID(record[1])
	if err != nil {
		return ProductRow{}, err
	}
	amount, err := parseQuantity("material_amount", record[2])
	if err != nil {
		return ProductRow{}, err
	}
	priority, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return ProductRow{}, fmt.Errorf("invalid priority: %s", record[3])
	}
	complexity, err := parseQuantity("work_complexity", record[4])
	if err != nil {
		return ProductRow{}, err
	}

	return ProductRow{
		Key:            key,
		MaterialID:     materialID,
		MaterialAmount: amount,
		Priority:       entities.Priority(priority),
		WorkComplexity: complexity,
	}, nil
}

func parseVariant(record []string) (VariantRow, error) {
	materialID, err := parseMaterialID(record[1])
	if err != nil {
		return VariantRow{}, err
	}
	amount, err := parseQuantity("material_amount", record[2])
	if err != nil {
		return VariantRow{}, err
	}
	complexity, err := parseQuantity("work_complexity", record[3])
	if err != nil {
		return VariantRow{}, err
	}

	return VariantRow{
		ProductKey:     strings.TrimSpace(record[0]),
		MaterialID:     materialID,
		MaterialAmount: amount,
		WorkComplexity: complexity,
	}, nil
}

func parseMaterialID(s string) (entities.MaterialID, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid material_id: %s", s)
	}
	return entities.MaterialID(id), nil
}

func parseQuantity(column, s string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", column, s)
	}
	return q, nil
}
