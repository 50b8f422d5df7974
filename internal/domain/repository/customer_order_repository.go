package repository

import "github.com/supplychain/mysupply-api/internal/domain/entity"

// CustomerOrderRepository puerto de persistencia para CustomerOrder y sus líneas.
type CustomerOrderRepository interface {
	Create(o *entity.CustomerOrder) error
	GetByID(id string) (*entity.CustomerOrder, error)
	GetByIDForUpdate(id string) (*entity.CustomerOrder, error)
	ExistsByOrderNumber(orderNumber string) (bool, error)
	List(limit, offset int) ([]*entity.CustomerOrder, error)
	ListByStatus(status string, limit, offset int) ([]*entity.CustomerOrder, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerOrder, error)
	// ListWithoutDelivery pedidos aún sin entrega asignada.
	ListWithoutDelivery(limit, offset int) ([]*entity.CustomerOrder, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}
