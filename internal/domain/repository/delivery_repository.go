package repository

import (
	"time"

	"github.com/supplychain/mysupply-api/internal/domain/entity"
)

// DeliveryRepository puerto de persistencia para Delivery.
// GetByOrderID devuelve (nil, nil) si el pedido no tiene entrega.
type DeliveryRepository interface {
	Create(d *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	GetByIDForUpdate(id string) (*entity.Delivery, error)
	GetByOrderID(orderID string) (*entity.Delivery, error)
	GetByTrackingNumber(trackingNumber string) (*entity.Delivery, error)
	List(limit, offset int) ([]*entity.Delivery, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Delivery, error)
	ListByDriver(driver string, limit, offset int) ([]*entity.Delivery, error)
	ListByScheduledDate(date time.Time, limit, offset int) ([]*entity.Delivery, error)
	Update(d *entity.Delivery) error
	Delete(id string) error
}
