package delivery

import (
	"context"

	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD. Arrancar o completar
// una entrega cambia también el estado del pedido asociado; ambos registros
// se confirman juntos.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.CustomerOrderRepository,
	) error) error
}
