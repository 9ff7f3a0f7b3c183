package simulation

import (
	"errors"
	"testing"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/resmng"
)

func newGenerator(t *testing.T, seed int64) (*Generator, *resmng.Instance) {
	t.Helper()
	inst, err := resmng.New(resmng.Options{})
	if err != nil {
		t.Fatal(err)
	}
	gen, err := NewGenerator(inst, Config{Seed: seed})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	return gen, inst
}

func TestNewGenerator_Validation(t *testing.T) {
	if _, err := NewGenerator(nil, Config{}); err == nil {
		t.Error("Expected error for nil instance")
	}
	inst, _ := resmng.New(resmng.Options{})
	if _, err := NewGenerator(inst, Config{MaxValue: 10}); err == nil {
		t.Error("Expected error for a max value too small to order anything")
	}
}

func TestGenerator_Bootstrap(t *testing.T) {
	gen, inst := newGenerator(t, 1)

	if err := gen.Bootstrap(5, 8); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if inst.MaterialCount() != 5 || inst.ProductCount() != 8 {
		t.Errorf("Expected 5 materials and 8 products, got %d/%d", inst.MaterialCount(), inst.ProductCount())
	}
}

func TestGenerator_RunKeepsInvariants(t *testing.T) {
	gen, inst := newGenerator(t, 42)
	if err := gen.Bootstrap(4, 6); err != nil {
		t.Fatal(err)
	}

	summary := NewSummary()
	for i := 0; i < 2000; i++ {
		ev := gen.Next()
		if ev.Cycle != i {
			t.Fatalf("Expected cycle %d, got %d", i, ev.Cycle)
		}
		if ev.Failed() && errors.Is(ev.Err, entities.ErrNoProducts) {
			t.Fatalf("cycle %d: catalog unexpectedly empty", i)
		}
		summary.Record(ev)

		if result := inst.Validate(); !result.Valid() {
			t.Fatalf("cycle %d (%s): %v", i, ev.Kind, result.Errors)
		}
	}

	if summary.Cycles != 2000 {
		t.Errorf("Expected 2000 cycles, got %d", summary.Cycles)
	}
	if summary.Applied[KindOrder] == 0 || summary.Applied[KindUpdateSupply] == 0 {
		t.Errorf("Expected orders and supply updates to be applied, got %v", summary.Applied)
	}
	if summary.Finished == 0 {
		t.Error("Expected some orders to finish over 2000 cycles")
	}
	if inst.FinishedLen() != 0 {
		t.Errorf("Expected generator to pick up every finished order, %d left", inst.FinishedLen())
	}
}

func TestGenerator_IsDeterministicPerSeed(t *testing.T) {
	first, _ := newGenerator(t, 7)
	second, _ := newGenerator(t, 7)

	for i := 0; i < 300; i++ {
		a, b := first.Next(), second.Next()
		if a.Kind != b.Kind || !a.Amount.Equal(b.Amount) || a.Outcome != b.Outcome || a.Failed() != b.Failed() {
			t.Fatalf("cycle %d diverged: %+v vs %+v", i, a, b)
		}
	}
}

func TestSummary_Record(t *testing.T) {
	s := NewSummary()
	s.Record(Event{Kind: KindOrder, Outcome: entities.MaterialScarce})
	s.Record(Event{Kind: KindOrder, Outcome: entities.MaterialNotAvailable, Finished: make([]entities.Order, 2)})
	s.Record(Event{Kind: KindOrder, Outcome: entities.Queued})
	s.Record(Event{Kind: KindAddMaterial, Err: entities.ErrDuplicateMaterial})

	if s.Cycles != 4 {
		t.Errorf("Expected 4 cycles, got %d", s.Cycles)
	}
	if s.Unfavorable() != 2 {
		t.Errorf("Expected 2 unfavorable forecasts, got %d", s.Unfavorable())
	}
	if s.Failed[KindAddMaterial] != 1 || s.Applied[KindOrder] != 3 {
		t.Errorf("Unexpected counts: applied %v failed %v", s.Applied, s.Failed)
	}
	if s.Finished != 2 {
		t.Errorf("Expected 2 finished, got %d", s.Finished)
	}
}

func TestKind_String(t *testing.T) {
	if KindUpdateSupply.String() != "update-supply" {
		t.Errorf("Expected update-supply, got %s", KindUpdateSupply)
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", Kind(99))
	}
}
