package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// ProductionOrderRepository puerto de persistencia para ProductionOrder.
type ProductionOrderRepository interface {
	Create(o *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	GetByIDForUpdate(id string) (*entity.ProductionOrder, error)
	ExistsByOrderNumber(orderNumber string) (bool, error)
	List(limit, offset int) ([]*entity.ProductionOrder, error)
	ListByStatus(status string, limit, offset int) ([]*entity.ProductionOrder, error)
	ListByPriority(priority string, limit, offset int) ([]*entity.ProductionOrder, error)
	// ListOrderedByPriority cola de producción: URGENT primero, luego por fecha.
	ListOrderedByPriority(limit, offset int) ([]*entity.ProductionOrder, error)
	Update(o *entity.ProductionOrder) error
	Delete(id string) error
}
