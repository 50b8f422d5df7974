package supply

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/availability"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// SupplyOrderUseCase máquina de estados de órdenes de aprovisionamiento:
// EN_ATTENTE -> EN_COURS -> RECUE. El único efecto sobre el stock de materias
// primas ocurre al pasar a RECUE (recepción), nunca antes; por eso eliminar
// una orden pendiente no compensa nada.
type SupplyOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.SupplyOrderRepository
	supplierRepo repository.SupplierRepository
	materialRepo repository.RawMaterialRepository
}

// NewSupplyOrderUseCase construye el caso de uso.
func NewSupplyOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.SupplyOrderRepository,
	supplierRepo repository.SupplierRepository,
	materialRepo repository.RawMaterialRepository,
) *SupplyOrderUseCase {
	return &SupplyOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
	}
}

// Create valida número de orden único, proveedor existente y elegibilidad de
// TODOS los materiales de las líneas antes de persistir. El total se calcula
// aquí una sola vez; el estado inicial es siempre EN_ATTENTE.
func (uc *SupplyOrderUseCase) Create(ctx context.Context, in dto.CreateSupplyOrderRequest) (*dto.SupplyOrderResponse, error) {
	if in.OrderNumber == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	exists, err := uc.orderRepo.ExistsByOrderNumber(in.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	materials := make([]*entity.RawMaterial, 0, len(in.Lines))
	for _, line := range in.Lines {
		m, err := uc.materialRepo.GetByID(line.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
		materials = append(materials, m)
	}

	eligibleIDs, err := uc.supplierRepo.ListMaterialIDs(in.SupplierID)
	if err != nil {
		return nil, err
	}
	eligible := make(map[string]struct{}, len(eligibleIDs))
	for _, id := range eligibleIDs {
		eligible[id] = struct{}{}
	}
	if ineligible := availability.IneligibleMaterials(eligible, materials); len(ineligible) > 0 {
		return nil, &domain.IneligibleSupplierError{SupplierID: in.SupplierID, Materials: ineligible}
	}

	now := time.Now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.SupplyOrder{
		ID:          uuid.New().String(),
		OrderNumber: in.OrderNumber,
		SupplierID:  in.SupplierID,
		OrderDate:   orderDate,
		Status:      entity.SupplyOrderEnAttente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for _, line := range in.Lines {
		l := entity.SupplyOrderLine{
			ID:            uuid.New().String(),
			SupplyOrderID: order.ID,
			RawMaterialID: line.RawMaterialID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
		}
		total = total.Add(l.Total())
		order.Lines = append(order.Lines, l)
	}
	order.TotalAmount = total

	// Cabecera y líneas se insertan en la misma transacción: una línea
	// fallida no debe dejar una orden sin líneas.
	err = uc.txRunner.RunSupply(ctx, func(
		orderRepo repository.SupplyOrderRepository,
		_ repository.RawMaterialRepository,
	) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toSupplyOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *SupplyOrderUseCase) GetByID(id string) (*dto.SupplyOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplyOrderResponse(order), nil
}

// List lista órdenes con paginación.
func (uc *SupplyOrderUseCase) List(limit, offset int) ([]*dto.SupplyOrderResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toSupplyOrderResponses(list), nil
}

// ListByStatus lista órdenes por estado.
func (uc *SupplyOrderUseCase) ListByStatus(status string, limit, offset int) ([]*dto.SupplyOrderResponse, error) {
	if !entity.SupplyOrderTransitions.Valid(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return toSupplyOrderResponses(list), nil
}

// ListBySupplier lista órdenes de un proveedor.
func (uc *SupplyOrderUseCase) ListBySupplier(supplierID string, limit, offset int) ([]*dto.SupplyOrderResponse, error) {
	list, err := uc.orderRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toSupplyOrderResponses(list), nil
}

// UpdateStatus aplica una transición. RECUE es terminal: toda mutación
// posterior falla con Conflict. Al pasar a RECUE se incrementa el stock de
// cada material de las líneas y se sella lastRestockDate, todo en la misma
// transacción con las filas de material bloqueadas.
func (uc *SupplyOrderUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*dto.SupplyOrderResponse, error) {
	if !entity.SupplyOrderTransitions.Valid(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.SupplyOrder
	err := uc.txRunner.RunSupply(ctx, func(
		orderRepo repository.SupplyOrderRepository,
		materialRepo repository.RawMaterialRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.SupplyOrderRecue {
			return domain.ErrConflict
		}
		if !entity.SupplyOrderTransitions.Allowed(order.Status, newStatus) {
			return domain.ErrConflict
		}
		if newStatus == entity.SupplyOrderRecue {
			if err := receiveLines(materialRepo, order.Lines); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(id, newStatus); err != nil {
			return err
		}
		order.Status = newStatus
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplyOrderResponse(updated), nil
}

// receiveLines suma la cantidad de cada línea al stock de su material y sella
// la fecha de reaprovisionamiento. Las filas quedan bloqueadas hasta el commit.
func receiveLines(materialRepo repository.RawMaterialRepository, lines []entity.SupplyOrderLine) error {
	now := time.Now()
	for _, line := range lines {
		material, err := materialRepo.GetByIDForUpdate(line.RawMaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		material.Stock += line.Quantity
		material.LastRestockDate = &now
		material.UpdatedAt = now
		if err := materialRepo.Update(material); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina una orden no recibida. No hay efecto de stock que revertir:
// las órdenes pendientes o en curso nunca incrementaron nada.
func (uc *SupplyOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunSupply(ctx, func(
		orderRepo repository.SupplyOrderRepository,
		_ repository.RawMaterialRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.SupplyOrderRecue {
			return domain.ErrConflict
		}
		return orderRepo.Delete(id)
	})
}

func toSupplyOrderResponse(o *entity.SupplyOrder) *dto.SupplyOrderResponse {
	resp := &dto.SupplyOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		SupplierID:  o.SupplierID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.SupplyOrderLineResponse{
			ID:            l.ID,
			RawMaterialID: l.RawMaterialID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Total:         l.Total(),
		})
	}
	return resp
}

func toSupplyOrderResponses(list []*entity.SupplyOrder) []*dto.SupplyOrderResponse {
	out := make([]*dto.SupplyOrderResponse, len(list))
	for i, o := range list {
		out[i] = toSupplyOrderResponse(o)
	}
	return out
}
