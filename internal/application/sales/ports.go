package sales

import (
	"context"

	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD. Crear un pedido
// consume stock de varios productos; eliminarlo lo restituye. En ambos casos
// pedido y productos se escriben en la misma transacción.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		orderRepo repository.CustomerOrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
