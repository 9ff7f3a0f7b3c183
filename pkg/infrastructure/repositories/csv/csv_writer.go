package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteScenario writes s as materials.csv, products.csv and, when it has
// any, variants.csv inside dir. The directory is created if needed.
func WriteScenario(dir string, s *Scenario) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	materials := make([][]string, 0, len(s.Materials))
	for _, m := range s.Materials {
		materials = append(materials, []string{strconv.Itoa(int(m.ID)), m.Supply.String()})
	}
	if err := writeRecords(filepath.Join(dir, MaterialsFile), materialsHeader, materials); err != nil {
		return err
	}

	products := make([][]string, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, []string{
			p.Key,
			strconv.Itoa(int(p.MaterialID)),
			p.MaterialAmount.String(),
			strconv.Itoa(int(p.Priority)),
			p.WorkComplexity.String(),
		})
	}
	if err := writeRecords(filepath.Join(dir, ProductsFile), productsHeader, products); err != nil {
		return err
	}

	if len(s.Variants) == 0 {
		return nil
	}
	variants := make([][]string, 0, len(s.Variants))
	for _, v := range s.Variants {
		variants = append(variants, []string{
			v.ProductKey,
			strconv.Itoa(int(v.MaterialID)),
			v.MaterialAmount.String(),
			v.WorkComplexity.String(),
		})
	}
	return writeRecords(filepath.Join(dir, VariantsFile), variantsHeader, variants)
}

func writeRecords(filename string, header []string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
