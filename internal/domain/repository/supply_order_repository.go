package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// SupplyOrderRepository puerto de persistencia para SupplyOrder y sus líneas.
// Create inserta la orden con todas sus líneas; GetByID las carga.
type SupplyOrderRepository interface {
	Create(o *entity.SupplyOrder) error
	GetByID(id string) (*entity.SupplyOrder, error)
	GetByIDForUpdate(id string) (*entity.SupplyOrder, error)
	ExistsByOrderNumber(orderNumber string) (bool, error)
	List(limit, offset int) ([]*entity.SupplyOrder, error)
	ListByStatus(status string, limit, offset int) ([]*entity.SupplyOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.SupplyOrder, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}
