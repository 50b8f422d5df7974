package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para Supplier y su conjunto de
// materiales elegibles (relación muchos-a-muchos con RawMaterial).
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	ExistsByEmail(email string) (bool, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Search(term string, limit, offset int) ([]*entity.Supplier, error)
	Update(s *entity.Supplier) error
	CountActiveOrders(supplierID string) (int64, error)
	Delete(id string) error

	// Elegibilidad: materiales que el proveedor está autorizado a suministrar.
	ListMaterialIDs(supplierID string) ([]string, error)
	AssignMaterial(supplierID, materialID string) error
	RemoveMaterial(supplierID, materialID string) error
}
