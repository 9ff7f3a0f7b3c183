package csv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/resmng"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeWorkshop(t *testing.T, withVariants bool) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, MaterialsFile, "material_id,supply\n1,80\n2,40.5\n")
	writeFile(t, dir, ProductsFile, "product_key,material_id,material_amount,priority,work_complexity\n"+
		"bracket,1,10,0,1\n"+
		"coil,2,5,1,2.5\n")
	if withVariants {
		writeFile(t, dir, VariantsFile, "product_key,material_id,material_amount,work_complexity\nbracket,2,4,1\n")
	}
	return dir
}

func TestLoader_LoadScenario(t *testing.T) {
	loader := NewLoader()

	scenario, err := loader.LoadScenario(writeWorkshop(t, true))
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if len(scenario.Materials) != 2 || len(scenario.Products) != 2 || len(scenario.Variants) != 1 {
		t.Fatalf("Expected 2/2/1 rows, got %d/%d/%d", len(scenario.Materials), len(scenario.Products), len(scenario.Variants))
	}
	if !scenario.Materials[1].Supply.Equal(decimal.RequireFromString("40.5")) {
		t.Errorf("Expected fractional supply 40.5, got %s", scenario.Materials[1].Supply)
	}
	coil := scenario.Products[1]
	if coil.Key != "coil" || coil.Priority != 1 || !coil.WorkComplexity.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("Unexpected coil row: %+v", coil)
	}

	withoutVariants, err := loader.LoadScenario(writeWorkshop(t, false))
	if err != nil {
		t.Fatalf("Expected variants.csv to be optional, got %v", err)
	}
	if len(withoutVariants.Variants) != 0 {
		t.Errorf("Expected no variants, got %d", len(withoutVariants.Variants))
	}
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errText string
	}{
		{"header only", "material_id,supply\n", "at least one data row"},
		{"wrong header", "id,supply\n1,2\n", "header mismatch"},
		{"short row", "material_id,supply\n1\n", "expected 2 columns"},
		{"bad id", "material_id,supply\nsteel,2\n", "invalid material_id"},
		{"bad supply", "material_id,supply\n1,lots\n", "invalid supply"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), MaterialsFile, tc.content)
			_, err := NewLoader().LoadMaterials(path)
			if err == nil || !strings.Contains(err.Error(), tc.errText) {
				t.Errorf("Expected error containing %q, got %v", tc.errText, err)
			}
		})
	}

	t.Run("duplicate product key", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), ProductsFile,
			"product_key,material_id,material_amount,priority,work_complexity\na,1,1,0,1\na,1,2,0,1\n")
		if _, err := NewLoader().LoadProducts(path); err == nil {
			t.Error("Expected duplicate product_key to fail")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewLoader().LoadScenario(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestScenario_Apply(t *testing.T) {
	scenario, err := NewLoader().LoadScenario(writeWorkshop(t, true))
	if err != nil {
		t.Fatal(err)
	}

	inst, err := resmng.New(resmng.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ids, err := scenario.Apply(inst)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if inst.MaterialCount() != 2 || inst.ProductCount() != 2 {
		t.Fatalf("Expected 2 materials and 2 products, got %d/%d", inst.MaterialCount(), inst.ProductCount())
	}
	if ids["bracket"] != 0 || ids["coil"] != 1 {
		t.Errorf("Expected dense ids in file order, got %v", ids)
	}
	v, err := inst.Variant(ids["bracket"], 1)
	if err != nil {
		t.Fatalf("Expected bracket variant 1, got %v", err)
	}
	if v.MaterialID != 2 {
		t.Errorf("Expected variant on material 2, got %d", v.MaterialID)
	}
}

func TestScenario_ApplyRejectsUnknownReferences(t *testing.T) {
	testCases := []struct {
		name        string
		scenario    Scenario
		expectError error
	}{
		{
			name: "product on unknown material",
			scenario: Scenario{
				Materials: []MaterialRow{{ID: 1, Supply: decimal.NewFromInt(1)}},
				Products:  []ProductRow{{Key: "a", MaterialID: 2, MaterialAmount: decimal.NewFromInt(1), WorkComplexity: decimal.NewFromInt(1)}},
			},
			expectError: entities.ErrNoSuchMaterial,
		},
		{
			name: "variant for unknown product key",
			scenario: Scenario{
				Materials: []MaterialRow{{ID: 1, Supply: decimal.NewFromInt(1)}},
				Variants:  []VariantRow{{ProductKey: "ghost", MaterialID: 1, MaterialAmount: decimal.NewFromInt(1), WorkComplexity: decimal.NewFromInt(1)}},
			},
			expectError: entities.ErrNoSuchProduct,
		},
		{
			name: "zero supply",
			scenario: Scenario{
				Materials: []MaterialRow{{ID: 1, Supply: decimal.Zero}},
			},
			expectError: entities.ErrZeroSupply,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := resmng.New(resmng.Options{})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := tc.scenario.Apply(inst); !errors.Is(err, tc.expectError) {
				t.Errorf("Expected %v, got %v", tc.expectError, err)
			}
		})
	}
}

func TestWriteScenario_LoadsBack(t *testing.T) {
	original := &Scenario{
		Materials: []MaterialRow{{ID: 4, Supply: decimal.RequireFromString("12.5")}},
		Products: []ProductRow{{
			Key: "frame", MaterialID: 4, MaterialAmount: decimal.NewFromInt(3),
			Priority: 2, WorkComplexity: decimal.NewFromInt(7),
		}},
		Variants: []VariantRow{{
			ProductKey: "frame", MaterialID: 4, MaterialAmount: decimal.NewFromInt(1),
			WorkComplexity: decimal.NewFromInt(9),
		}},
	}

	dir := filepath.Join(t.TempDir(), "nested", "scenario")
	if err := WriteScenario(dir, original); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	loaded, err := NewLoader().LoadScenario(dir)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if !loaded.Materials[0].Supply.Equal(original.Materials[0].Supply) {
		t.Errorf("Expected supply %s, got %s", original.Materials[0].Supply, loaded.Materials[0].Supply)
	}
	if loaded.Products[0].Priority != 2 || loaded.Variants[0].ProductKey != "frame" {
		t.Errorf("Unexpected rows: %+v %+v", loaded.Products[0], loaded.Variants[0])
	}
}
