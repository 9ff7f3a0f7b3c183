package output

import (
	"fmt"
	"io"
	"math"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/resmng"
	"github.com/vsinha/resmng/pkg/simulation"
)

// PrintEvent writes one line per generated event, followed by one line per
// order it finished. Rejected operations are only shown when verbose.
func PrintEvent(w io.Writer, ev simulation.Event, verbose bool) {
	if ev.Failed() {
		if verbose {
			fmt.Fprintf(w, "[%d] %s rejected: %v\n", ev.Cycle, ev.Kind, ev.Err)
		}
		return
	}

	switch ev.Kind {
	case simulation.KindAddMaterial:
		fmt.Fprintf(w, "[%d] Adding material %d, supply: %s\n", ev.Cycle, ev.MaterialID, ev.Amount)
	case simulation.KindAddProduct:
		fmt.Fprintf(w, "[%d] Adding product %d composed of %sx material %d\n",
			ev.Cycle, ev.ProductID, ev.Amount, ev.MaterialID)
	case simulation.KindAddVariant:
		fmt.Fprintf(w, "[%d] Adding variant %d of product %d composed of %sx material %d\n",
			ev.Cycle, ev.VariantID, ev.ProductID, ev.Amount, ev.MaterialID)
	case simulation.KindOrder:
		printOrder(w, ev)
	case simulation.KindUpdateSupply:
		fmt.Fprintf(w, "[%d] Updating supply of material %d to %s; demand: %s, scarcity: %s\n",
			ev.Cycle, ev.MaterialID, ev.Amount, ev.Demand, formatScarcity(ev.Scarcity))
	}

	for _, order := range ev.Finished {
		fmt.Fprintf(w, "    finished %s of product %d (variant %d) for user %d\n",
			order.Amount, order.ProductID, order.Variant, order.UserID)
	}
}

func printOrder(w io.Writer, ev simulation.Event) {
	switch ev.Outcome {
	case entities.Delivered:
		fmt.Fprintf(w, "[%d] Delivering %s of product %d from stock\n", ev.Cycle, ev.Amount, ev.ProductID)
	case entities.MaterialNotAvailable:
		fmt.Fprintf(w, "[%d] Order of %s product %d queued. Material %d not available; scarcity: %s\n",
			ev.Cycle, ev.Amount, ev.ProductID, ev.MaterialID, formatScarcity(ev.Scarcity))
	case entities.MaterialScarce:
		fmt.Fprintf(w, "[%d] Order of %s product %d queued. Material %d scarce: %s > %d\n",
			ev.Cycle, ev.Amount, ev.ProductID, ev.MaterialID, formatScarcity(ev.Scarcity), entities.Equilibrium)
	default:
		fmt.Fprintf(w, "[%d] Ordering %s of product %d at the cost of %sx material %d, scarcity: %s\n",
			ev.Cycle, ev.Amount, ev.ProductID, ev.Cost, ev.MaterialID, formatScarcity(ev.Scarcity))
	}
}

// PrintSummary writes the per-kind counts and the final ledger
func PrintSummary(w io.Writer, summary *simulation.Summary, snap resmng.Snapshot) {
	fmt.Fprintf(w, "\nSimulation ends at cycle %d.\n", summary.Cycles)
	fmt.Fprintf(w, "==============================\n\n")

	kinds := []simulation.Kind{
		simulation.KindAddMaterial,
		simulation.KindAddProduct,
		simulation.KindAddVariant,
		simulation.KindOrder,
		simulation.KindUpdateSupply,
	}
	fmt.Fprintf(w, "%-15s %-8s %-8s\n", "Operation", "Applied", "Rejected")
	fmt.Fprintf(w, "%-15s %-8s %-8s\n", "---------------", "--------", "--------")
	for _, k := range kinds {
		fmt.Fprintf(w, "%-15s %-8d %-8d\n", k, summary.Applied[k], summary.Failed[k])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Forecasts: delivered %d, queued %d, not available %d, scarce %d\n",
		summary.Outcomes[entities.Delivered],
		summary.Outcomes[entities.Queued],
		summary.Outcomes[entities.MaterialNotAvailable],
		summary.Outcomes[entities.MaterialScarce])
	fmt.Fprintf(w, "Finished orders: %d\n", summary.Finished)
	fmt.Fprintf(w, "Backlog: %d (by class %v)\n", snap.BacklogLen(), snap.Backlog)
	fmt.Fprintf(w, "Catalog: %d materials, %d products\n\n", len(snap.Materials), len(snap.Products))

	if len(snap.Materials) == 0 {
		return
	}
	fmt.Fprintf(w, "%-10s %-12s %-12s %-10s\n", "Material", "Supply", "Demand", "Scarcity")
	fmt.Fprintf(w, "%-10s %-12s %-12s %-10s\n", "----------", "------------", "------------", "----------")
	for _, m := range snap.Materials {
		fmt.Fprintf(w, "%-10d %-12s %-12s %-10s\n", m.ID, m.Supply, m.Demand, formatScarcity(m.Scarcity))
	}
}

func formatScarcity(s entities.Scarcity) string {
	if math.IsInf(float64(s), 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", float64(s))
}
