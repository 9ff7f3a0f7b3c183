package output

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/resmng"
	"github.com/vsinha/resmng/pkg/simulation"
)

func TestPrintEvent(t *testing.T) {
	testCases := []struct {
		name     string
		event    simulation.Event
		verbose  bool
		expected string
	}{
		{
			name:     "material",
			event:    simulation.Event{Cycle: 3, Kind: simulation.KindAddMaterial, MaterialID: 7, Amount: decimal.NewFromInt(120)},
			expected: "[3] Adding material 7, supply: 120\n",
		},
		{
			name: "scarce order",
			event: simulation.Event{
				Cycle: 4, Kind: simulation.KindOrder, ProductID: 1, MaterialID: 7,
				Amount: decimal.NewFromInt(2), Outcome: entities.MaterialScarce, Scarcity: 62.5,
			},
			expected: "[4] Order of 2 product 1 queued. Material 7 scarce: 62.50 > 50\n",
		},
		{
			name: "supply update at zero",
			event: simulation.Event{
				Cycle: 5, Kind: simulation.KindUpdateSupply, MaterialID: 7,
				Amount: decimal.Zero, Demand: decimal.NewFromInt(3), Scarcity: entities.Scarcity(math.Inf(1)),
			},
			expected: "[5] Updating supply of material 7 to 0; demand: 3, scarcity: inf\n",
		},
		{
			name:     "rejected hidden",
			event:    simulation.Event{Cycle: 6, Kind: simulation.KindOrder, Err: entities.ErrZeroAmount},
			expected: "",
		},
		{
			name:     "rejected verbose",
			event:    simulation.Event{Cycle: 6, Kind: simulation.KindOrder, Err: errors.New("boom")},
			verbose:  true,
			expected: "[6] order rejected: boom\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintEvent(&buf, tc.event, tc.verbose)
			if buf.String() != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, buf.String())
			}
		})
	}
}

func TestPrintEvent_FinishedOrders(t *testing.T) {
	var buf bytes.Buffer
	PrintEvent(&buf, simulation.Event{
		Kind:     simulation.KindUpdateSupply,
		Amount:   decimal.NewFromInt(10),
		Finished: []entities.Order{{ProductID: 2, Amount: decimal.NewFromInt(4), Variant: 1, UserID: 9}},
	}, false)

	if !strings.Contains(buf.String(), "finished 4 of product 2 (variant 1) for user 9") {
		t.Errorf("Expected finished order line, got %q", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	summary := simulation.NewSummary()
	summary.Record(simulation.Event{Kind: simulation.KindOrder, Outcome: entities.Queued})
	summary.Record(simulation.Event{Kind: simulation.KindAddMaterial, Err: entities.ErrDuplicateMaterial})

	snap := resmng.Snapshot{
		Materials: []resmng.MaterialState{{ID: 1, Supply: decimal.NewFromInt(80), Demand: decimal.NewFromInt(80), Scarcity: 50}},
	}
	snap.Backlog[0] = 1

	var buf bytes.Buffer
	PrintSummary(&buf, summary, snap)
	out := buf.String()

	for _, want := range []string{
		"Simulation ends at cycle 2.",
		"queued 1",
		"Backlog: 1",
		"50.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}
