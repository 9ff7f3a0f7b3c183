package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProduct_Validation(t *testing.T) {
	p, err := NewProduct(1, 7, qty(10), decimal.RequireFromString("1.5"))
	if err != nil {
		t.Fatalf("Expected valid product creation to succeed: %v", err)
	}
	if len(p.Variants) != 1 || p.Variants[0].ID != 0 {
		t.Fatalf("Expected a single variant with id 0, got %+v", p.Variants)
	}
	if p.Priority != 1 {
		t.Errorf("Expected priority 1, got %d", p.Priority)
	}

	testCases := []struct {
		name        string
		priority    Priority
		amount      decimal.Decimal
		complexity  decimal.Decimal
		expectError error
	}{
		{"zero amount", 0, qty(0), qty(1), ErrZeroMaterialAmount},
		{"negative amount", 0, qty(-2), qty(1), ErrZeroMaterialAmount},
		{"zero complexity", 0, qty(1), qty(0), ErrInvalidComplexity},
		{"negative priority", -1, qty(1), qty(1), ErrInvalidPriority},
		{"priority past last class", PriorityClasses, qty(1), qty(1), ErrInvalidPriority},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.priority, 7, tc.amount, tc.complexity)
			if !errors.Is(err, tc.expectError) {
				t.Fatalf("Expected %v, got %v", tc.expectError, err)
			}
		})
	}
}

func TestProduct_AddVariantSequentialIDs(t *testing.T) {
	p, err := NewProduct(0, 1, qty(2), qty(1))
	if err != nil {
		t.Fatal(err)
	}

	for want := VariantID(1); want <= 3; want++ {
		id, err := p.AddVariant(MaterialID(want), qty(3), qty(2))
		if err != nil {
			t.Fatalf("AddVariant failed: %v", err)
		}
		if id != want {
			t.Errorf("Expected variant id %d, got %d", want, id)
		}
	}

	if _, err := p.AddVariant(9, qty(0), qty(1)); !errors.Is(err, ErrZeroMaterialAmount) {
		t.Errorf("Expected ErrZeroMaterialAmount, got %v", err)
	}
	if len(p.Variants) != 4 {
		t.Errorf("Expected rejected variant not to be appended, have %d variants", len(p.Variants))
	}

	if _, ok := p.Variant(4); ok {
		t.Error("Expected lookup of unknown variant to fail")
	}
	if v, ok := p.Variant(2); !ok || v.MaterialID != 2 {
		t.Errorf("Expected variant 2 on material 2, got %+v", v)
	}
}

func TestProduct_MaterialIDsDistinct(t *testing.T) {
	p, _ := NewProduct(0, 1, qty(2), qty(1))
	_, _ = p.AddVariant(2, qty(1), qty(1))
	_, _ = p.AddVariant(1, qty(5), qty(3))

	ids := p.MaterialIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Expected [1 2], got %v", ids)
	}
}

func TestProduct_ManufactureAndDeliver(t *testing.T) {
	p, _ := NewProduct(0, 1, qty(2), qty(1))
	p.Demand = qty(5)

	if err := p.Deliver(qty(5)); !errors.Is(err, ErrInsufficientSupply) {
		t.Fatalf("Expected ErrInsufficientSupply without stock, got %v", err)
	}

	p.Manufacture(qty(5))
	if err := p.Deliver(qty(5)); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if !p.Supply.IsZero() || !p.Demand.IsZero() {
		t.Errorf("Expected zero supply and demand, got %s/%s", p.Supply, p.Demand)
	}
}
