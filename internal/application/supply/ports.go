package supply

import (
	"context"

	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, con repositorios
// atados a esa tx. La recepción de una orden muta la orden y el stock de
// varios materiales: o se aplica todo o no se aplica nada.
type TxRunner interface {
	RunSupply(ctx context.Context, fn func(
		orderRepo repository.SupplyOrderRepository,
		materialRepo repository.RawMaterialRepository,
	) error) error
}
