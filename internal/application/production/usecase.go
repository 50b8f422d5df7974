package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/availability"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/planning"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// ProductionOrderUseCase máquina de estados de órdenes de producción:
// EN_ATTENTE -> EN_PRODUCTION -> TERMINE. La disponibilidad BOM se chequea en
// la creación y OTRA VEZ al arrancar (el stock pudo cambiar entre medias);
// el consumo de materiales ocurre al arrancar, el alta de stock de producto
// al terminar.
type ProductionOrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.ProductionOrderRepository
	productRepo repository.ProductRepository
	bomRepo     repository.BillOfMaterialRepository
}

// NewProductionOrderUseCase construye el caso de uso.
func NewProductionOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.ProductionOrderRepository,
	productRepo repository.ProductRepository,
	bomRepo repository.BillOfMaterialRepository,
) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		bomRepo:     bomRepo,
	}
}

// Create valida número único, producto existente y disponibilidad BOM para la
// cantidad pedida. Rechaza con el detalle completo de faltantes. No consume
// stock: eso se difiere al arranque.
func (uc *ProductionOrderUseCase) Create(ctx context.Context, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.OrderNumber == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityStandard
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.orderRepo.ExistsByOrderNumber(in.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.ProductionOrder
	err = uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		_ repository.ProductRepository,
		bomRepo repository.BillOfMaterialRepository,
		materialRepo repository.RawMaterialRepository,
	) error {
		if err := checkAvailability(bomRepo, materialRepo, in.ProductID, in.Quantity, false); err != nil {
			return err
		}
		now := time.Now()
		orderDate := in.OrderDate
		if orderDate.IsZero() {
			orderDate = now
		}
		order := &entity.ProductionOrder{
			ID:             uuid.New().String(),
			OrderNumber:    in.OrderNumber,
			ProductID:      in.ProductID,
			Quantity:       in.Quantity,
			Status:         entity.ProductionOrderEnAttente,
			Priority:       priority,
			OrderDate:      orderDate,
			EstimatedHours: planning.EstimatedHours(product.ProductionTimeHours, in.Quantity),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponse(created), nil
}

// checkAvailability carga la BOM del producto y compara stock contra
// bom.Quantity × orderQty. forUpdate bloquea las filas de material cuando el
// chequeo precede a un consumo.
func checkAvailability(
	bomRepo repository.BillOfMaterialRepository,
	materialRepo repository.RawMaterialRepository,
	productID string,
	orderQty int,
	forUpdate bool,
) error {
	boms, err := bomRepo.ListByProduct(productID)
	if err != nil {
		return err
	}
	materials := make(map[string]*entity.RawMaterial, len(boms))
	for _, bom := range boms {
		var m *entity.RawMaterial
		if forUpdate {
			m, err = materialRepo.GetByIDForUpdate(bom.MaterialID)
		} else {
			m, err = materialRepo.GetByID(bom.MaterialID)
		}
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		materials[bom.MaterialID] = m
	}
	if shortfalls := availability.MaterialShortfalls(boms, materials, orderQty); len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Shortfalls: shortfalls}
	}
	return nil
}

// GetByID obtiene una orden de producción.
func (uc *ProductionOrderUseCase) GetByID(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toProductionOrderResponse(order), nil
}

// List lista órdenes con paginación.
func (uc *ProductionOrderUseCase) List(limit, offset int) ([]*dto.ProductionOrderResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponses(list), nil
}

// ListByStatus lista por estado.
func (uc *ProductionOrderUseCase) ListByStatus(status string, limit, offset int) ([]*dto.ProductionOrderResponse, error) {
	if !entity.ProductionOrderTransitions.Valid(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponses(list), nil
}

// ListByPriority lista por prioridad.
func (uc *ProductionOrderUseCase) ListByPriority(priority string, limit, offset int) ([]*dto.ProductionOrderResponse, error) {
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.ListByPriority(priority, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponses(list), nil
}

// Queue cola de producción ordenada por prioridad y fecha.
func (uc *ProductionOrderUseCase) Queue(limit, offset int) ([]*dto.ProductionOrderResponse, error) {
	list, err := uc.orderRepo.ListOrderedByPriority(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponses(list), nil
}

// Start EN_ATTENTE -> EN_PRODUCTION. Revalida disponibilidad con las filas de
// material bloqueadas y consume bom.Quantity × order.Quantity de cada una.
// Fija startDate y estimatedEndDate (jornadas de 8h, mínimo 1 día).
func (uc *ProductionOrderUseCase) Start(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	var updated *entity.ProductionOrder
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		_ repository.ProductRepository,
		bomRepo repository.BillOfMaterialRepository,
		materialRepo repository.RawMaterialRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.ProductionOrderEnAttente {
			return domain.ErrConflict
		}
		if err := checkAvailability(bomRepo, materialRepo, order.ProductID, order.Quantity, true); err != nil {
			return err
		}
		if err := consumeMaterials(bomRepo, materialRepo, order); err != nil {
			return err
		}
		now := time.Now()
		end := now.AddDate(0, 0, planning.EstimatedDays(order.EstimatedHours))
		order.Status = entity.ProductionOrderEnProduction
		order.StartDate = &now
		order.EstimatedEndDate = &end
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponse(updated), nil
}

// consumeMaterials resta el consumo de cada línea de BOM. El chequeo previo
// con FOR UPDATE garantiza que la resta nunca deja saldo negativo.
func consumeMaterials(
	bomRepo repository.BillOfMaterialRepository,
	materialRepo repository.RawMaterialRepository,
	order *entity.ProductionOrder,
) error {
	boms, err := bomRepo.ListByProduct(order.ProductID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, bom := range boms {
		material, err := materialRepo.GetByIDForUpdate(bom.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		material.Stock -= bom.Quantity * order.Quantity
		material.UpdatedAt = now
		if err := materialRepo.Update(material); err != nil {
			return err
		}
	}
	return nil
}

// Complete EN_PRODUCTION -> TERMINE. Incrementa el stock del producto en la
// cantidad fabricada y sella actualEndDate.
func (uc *ProductionOrderUseCase) Complete(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	var updated *entity.ProductionOrder
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		productRepo repository.ProductRepository,
		_ repository.BillOfMaterialRepository,
		_ repository.RawMaterialRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.ProductionOrderEnProduction {
			return domain.ErrConflict
		}
		product, err := productRepo.GetByIDForUpdate(order.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		product.Stock += order.Quantity
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		order.Status = entity.ProductionOrderTermine
		order.ActualEndDate = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductionOrderResponse(updated), nil
}

// UpdateStatus despacha a Start/Complete cuando el destino coincide con esas
// transiciones; cualquier otro destino es una escritura simple sin efectos.
func (uc *ProductionOrderUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*dto.ProductionOrderResponse, error) {
	if !entity.ProductionOrderTransitions.Valid(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	switch newStatus {
	case entity.ProductionOrderEnProduction:
		return uc.Start(ctx, id)
	case entity.ProductionOrderTermine:
		return uc.Complete(ctx, id)
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return toProductionOrderResponse(order), nil
}

// Delete solo elimina órdenes pendientes. Nada que revertir: el consumo se
// difiere al arranque.
func (uc *ProductionOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		_ repository.ProductRepository,
		_ repository.BillOfMaterialRepository,
		_ repository.RawMaterialRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.ProductionOrderEnProduction || order.Status == entity.ProductionOrderTermine {
			return domain.ErrConflict
		}
		return orderRepo.Delete(id)
	})
}

func toProductionOrderResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		ProductID:        o.ProductID,
		Quantity:         o.Quantity,
		Status:           o.Status,
		Priority:         o.Priority,
		OrderDate:        o.OrderDate,
		StartDate:        o.StartDate,
		EstimatedEndDate: o.EstimatedEndDate,
		ActualEndDate:    o.ActualEndDate,
		EstimatedHours:   o.EstimatedHours,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toProductionOrderResponses(list []*entity.ProductionOrder) []*dto.ProductionOrderResponse {
	out := make([]*dto.ProductionOrderResponse, len(list))
	for i, o := range list {
		out[i] = toProductionOrderResponse(o)
	}
	return out
}
