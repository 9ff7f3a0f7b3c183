package production

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/infrastructure/events"
	"github.com/vsinha/resmng/pkg/infrastructure/repositories/memory"
	testinghelpers "github.com/vsinha/resmng/pkg/infrastructure/testing"
)

type fixture struct {
	materials *memory.MaterialRepository
	products  *memory.ProductRepository
	queue     *Queue
	finished  *FinishedStack
	store     *events.InMemoryEventStore
	scheduler *Scheduler
	admission *AdmissionController
}

func newFixture(t *testing.T, materials *memory.MaterialRepository, products *memory.ProductRepository) *fixture {
	t.Helper()

	f := &fixture{
		materials: materials,
		products:  products,
		queue:     NewQueue(),
		finished:  NewFinishedStack(),
		store:     events.NewInMemoryEventStore(),
	}
	deps := Deps{
		Materials: f.materials,
		Products:  f.products,
		Queue:     f.queue,
		Finished:  f.finished,
		Events:    f.store,
	}

	var err error
	f.scheduler, err = NewScheduler(deps)
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	f.admission, err = NewAdmissionController(deps, f.scheduler)
	if err != nil {
		t.Fatalf("NewAdmissionController failed: %v", err)
	}
	return f
}

func newWorkshopFixture(t *testing.T) *fixture {
	materials, products := testinghelpers.BuildWorkshopTestData()
	return newFixture(t, materials, products)
}

// newSingleMaterialFixture holds one material and one single-variant product per amount given.
func newSingleMaterialFixture(t *testing.T, supply int64, amounts ...int64) *fixture {
	materials := memory.NewMaterialRepository(1)
	products := memory.NewProductRepository(len(amounts))

	m, err := entities.NewMaterial(1, decimal.NewFromInt(supply))
	if err != nil {
		t.Fatal(err)
	}
	if err := materials.AddMaterial(m); err != nil {
		t.Fatal(err)
	}
	for _, amount := range amounts {
		p, err := entities.NewProduct(0, 1, decimal.NewFromInt(amount), decimal.NewFromInt(1))
		if err != nil {
			t.Fatal(err)
		}
		products.AddProduct(p)
	}
	return newFixture(t, materials, products)
}

func (f *fixture) order(t *testing.T, product entities.ProductID, amount int64, preferred entities.VariantID) *Admission {
	t.Helper()
	admission, err := f.admission.Admit(OrderRequest{
		ProductID:        product,
		Amount:           decimal.NewFromInt(amount),
		PreferredVariant: preferred,
		UserID:           7,
	})
	if err != nil {
		t.Fatalf("Admit(product %d, amount %d) failed: %v", product, amount, err)
	}
	return admission
}

func (f *fixture) material(t *testing.T, id entities.MaterialID) *entities.Material {
	t.Helper()
	m, err := f.materials.GetMaterial(id)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func (f *fixture) product(t *testing.T, id entities.ProductID) *entities.Product {
	t.Helper()
	p, err := f.products.GetProduct(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func (f *fixture) assertBalances(t *testing.T, id entities.MaterialID, supply, demand int64) {
	t.Helper()
	m := f.material(t, id)
	if !m.Supply().Equal(decimal.NewFromInt(supply)) {
		t.Errorf("material %d: expected supply %d, got %s", id, supply, m.Supply())
	}
	if !m.Demand().Equal(decimal.NewFromInt(demand)) {
		t.Errorf("material %d: expected demand %d, got %s", id, demand, m.Demand())
	}
}

func (f *fixture) assertNonNegative(t *testing.T) {
	t.Helper()
	for _, m := range f.materials.GetAllMaterials() {
		if m.Supply().IsNegative() || m.Demand().IsNegative() {
			t.Errorf("material %d went negative: supply %s demand %s", m.ID, m.Supply(), m.Demand())
		}
	}
	for _, p := range f.products.GetAllProducts() {
		if p.Supply.IsNegative() || p.Demand.IsNegative() {
			t.Errorf("product %d went negative: supply %s demand %s", p.ID, p.Supply, p.Demand)
		}
	}
}
