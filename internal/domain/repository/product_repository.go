package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByIDForUpdate(id string) (*entity.Product, error)
	ExistsByName(name string) (bool, error)
	List(limit, offset int) ([]*entity.Product, error)
	Search(term string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	Update(p *entity.Product) error
	CountProductionOrders(productID string) (int64, error)
	Delete(id string) error
}

// BillOfMaterialRepository puerto para la lista de materiales por producto.
type BillOfMaterialRepository interface {
	CreateAll(boms []*entity.BillOfMaterial) error
	ListByProduct(productID string) ([]*entity.BillOfMaterial, error)
	ExistsByProductAndMaterial(productID, materialID string) (bool, error)
	DeleteByProduct(productID string) error
}
