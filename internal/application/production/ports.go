package production

import (
	"context"

	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD. Arrancar una orden
// revalida disponibilidad y consume varios materiales; completarla toca la
// orden y el producto. Ambas cosas se confirman juntas o ninguna.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		orderRepo repository.ProductionOrderRepository,
		productRepo repository.ProductRepository,
		bomRepo repository.BillOfMaterialRepository,
		materialRepo repository.RawMaterialRepository,
	) error) error
}
