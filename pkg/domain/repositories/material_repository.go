package repositories

import "github.com/vsinha/resmng/pkg/domain/entities"

// MaterialRepository provides access to the material ledger
type MaterialRepository interface {
	// AddMaterial stores a new material, failing with ErrDuplicateMaterial if the id is taken.
	AddMaterial(material *entities.Material) error
	GetMaterial(id entities.MaterialID) (*entities.Material, error)
	// GetAllMaterials returns every material ordered by id.
	GetAllMaterials() []*entities.Material
	Count() int
}
