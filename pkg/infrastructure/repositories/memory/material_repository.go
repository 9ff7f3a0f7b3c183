package memory

import (
	"fmt"
	"sort"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/domain/repositories"
)

// MaterialRepository provides in-memory material storage
type MaterialRepository struct {
	materials    []*entities.Material
	materialsMap map[entities.MaterialID]int
}

// NewMaterialRepository creates a new in-memory material repository
func NewMaterialRepository(expectedMaterials int) *MaterialRepository {
	return &MaterialRepository{
		materials:    make([]*entities.Material, 0, expectedMaterials),
		materialsMap: make(map[entities.MaterialID]int, expectedMaterials),
	}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// AddMaterial adds a material to the repository
func (r *MaterialRepository) AddMaterial(material *entities.Material) error {
	if _, exists := r.materialsMap[material.ID]; exists {
		return fmt.Errorf("material %d: %w", material.ID, entities.ErrDuplicateMaterial)
	}
	r.materialsMap[material.ID] = len(r.materials)
	r.materials = append(r.materials, material)
	return nil
}

// GetMaterial returns the material with the given id. The pointer is the
// stored entity, so callers mutate the ledger in place.
func (r *MaterialRepository) GetMaterial(id entities.MaterialID) (*entities.Material, error) {
	index, exists := r.materialsMap[id]
	if !exists {
		return nil, fmt.Errorf("material %d: %w", id, entities.ErrNoSuchMaterial)
	}
	return r.materials[index], nil
}

// GetAllMaterials returns all materials ordered by id
func (r *MaterialRepository) GetAllMaterials() []*entities.Material {
	materials := make([]*entities.Material, len(r.materials))
	copy(materials, r.materials)
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].ID < materials[j].ID
	})
	return materials
}

// Count returns the number of stored materials
func (r *MaterialRepository) Count() int {
	return len(r.materials)
}
