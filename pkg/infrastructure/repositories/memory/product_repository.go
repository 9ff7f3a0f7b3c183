package memory

import (
	"fmt"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/domain/repositories"
)

// ProductRepository provides in-memory product catalog storage. Product ids
// are positions in the backing slice.
type ProductRepository struct {
	products []*entities.Product
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products: make([]*entities.Product, 0, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// AddProduct stores the product and assigns it the next id
func (r *ProductRepository) AddProduct(product *entities.Product) entities.ProductID {
	product.ID = entities.ProductID(len(r.products))
	r.products = append(r.products, product)
	return product.ID
}

// GetProduct returns the product with the given id
func (r *ProductRepository) GetProduct(id entities.ProductID) (*entities.Product, error) {
	if id < 0 || int(id) >= len(r.products) {
		return nil, fmt.Errorf("product %d: %w", id, entities.ErrNoSuchProduct)
	}
	return r.products[id], nil
}

// GetAllProducts returns all products in id order
func (r *ProductRepository) GetAllProducts() []*entities.Product {
	products := make([]*entities.Product, len(r.products))
	copy(products, r.products)
	return products
}

// Count returns the number of stored products
func (r *ProductRepository) Count() int {
	return len(r.products)
}
