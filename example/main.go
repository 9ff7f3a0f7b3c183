package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/resmng"
)

const (
	steel  entities.MaterialID = 1
	copper entities.MaterialID = 2
)

func main() {
	inst, err := resmng.New(resmng.Options{})
	if err != nil {
		fmt.Printf("❌ Setup failed: %v\n", err)
		return
	}

	// 80 steel, enough for exactly 8 brackets
	must(inst.AddMaterial(steel, decimal.NewFromInt(80)))
	must(inst.AddMaterial(copper, decimal.NewFromInt(20)))

	bracket, err := inst.AddProduct(steel, decimal.NewFromInt(10), 0, decimal.NewFromInt(1))
	must(err)
	// Copper brackets take 4 copper each but are harder to make
	_, err = inst.AddProductVariant(bracket, copper, decimal.NewFromInt(4), decimal.NewFromInt(3))
	must(err)

	fmt.Println("🏭 Ordering 8 brackets...")
	outcome, err := inst.Order(bracket, decimal.NewFromInt(8), 0, 1, true)
	must(err)
	printMaterial(inst, steel)
	fmt.Printf("  Forecast: %s, backlog: %d\n\n", outcome, inst.QueueLen())

	fmt.Println("⚙️  Draining the backlog...")
	report := inst.ProcessQueue()
	fmt.Printf("  Manufactured: %d, backlog: %d\n", len(report.Manufactured), report.Backlog)
	printMaterial(inst, steel)
	fmt.Println()

	fmt.Println("🏭 Ordering 3 more brackets with no steel left...")
	outcome, err = inst.Order(bracket, decimal.NewFromInt(3), 0, 2, true)
	must(err)
	fmt.Printf("  Forecast: %s, backlog: %d\n", outcome, inst.QueueLen())
	printMaterial(inst, copper)
	fmt.Println()

	fmt.Println("📦 Finished orders (most recent first):")
	for {
		order, ok := inst.PopFinished()
		if !ok {
			break
		}
		fmt.Printf("  user %d: %s x product %d via variant %d\n",
			order.UserID, order.Amount, order.ProductID, order.Variant)
	}
}

func printMaterial(inst *resmng.Instance, id entities.MaterialID) {
	supply, _ := inst.MaterialSupply(id)
	demand, _ := inst.MaterialDemand(id)
	scarcity, _ := inst.MaterialScarcity(id)
	fmt.Printf("  Material %d: supply %s, demand %s, scarcity %.2f\n", id, supply, demand, float64(scarcity))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
