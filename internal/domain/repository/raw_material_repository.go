package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// RawMaterialRepository puerto de persistencia para RawMaterial.
// GetByID devuelve (nil, nil) si no existe. GetByIDForUpdate bloquea la fila
// (SELECT FOR UPDATE); usarlo dentro de transacciones para mutaciones de stock.
type RawMaterialRepository interface {
	Create(m *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	GetByIDForUpdate(id string) (*entity.RawMaterial, error)
	ExistsByName(name string) (bool, error)
	List(limit, offset int) ([]*entity.RawMaterial, error)
	Search(term string, limit, offset int) ([]*entity.RawMaterial, error)
	ListLowStock(limit, offset int) ([]*entity.RawMaterial, error)
	Update(m *entity.RawMaterial) error
	CountSupplyOrderLines(materialID string) (int64, error)
	Delete(id string) error
}
