package repositories

import "github.com/vsinha/resmng/pkg/domain/entities"

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	// AddProduct stores a product and assigns it the next dense id.
	AddProduct(product *entities.Product) entities.ProductID
	GetProduct(id entities.ProductID) (*entities.Product, error)
	GetAllProducts() []*entities.Product
	Count() int
}
