package sales

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

// CustomerOrderUseCase máquina de estados de pedidos de cliente:
// EN_PREPARATION -> EN_ROUTE -> LIVREE. El stock de producto se consume al
// CREAR el pedido; eliminar un pedido no entregado lo restituye línea a línea.
type CustomerOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.CustomerOrderRepository
	customerRepo repository.CustomerRepository
	deliveryRepo repository.DeliveryRepository
}

// NewCustomerOrderUseCase construye el caso de uso.
func NewCustomerOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.CustomerOrderRepository,
	customerRepo repository.CustomerRepository,
	deliveryRepo repository.DeliveryRepository,
) *CustomerOrderUseCase {
	return &CustomerOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		deliveryRepo: deliveryRepo,
	}
}

// Create valida número único, cliente existente y stock suficiente para TODAS
// las líneas antes de consumir nada. El chequeo y el consumo corren en la
// misma transacción con las filas de producto bloqueadas; el rechazo enumera
// todos los faltantes, no solo el primero.
func (uc *CustomerOrderUseCase) Create(ctx context.Context, in dto.CreateCustomerOrderRequest) (*dto.CustomerOrderResponse, error) {
	if in.OrderNumber == "" || in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
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
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.CustomerOrder
	err = uc.txRunner.RunSales(ctx, func(
		orderRepo repository.CustomerOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		now := time.Now()
		orderDate := in.OrderDate
		if orderDate.IsZero() {
			orderDate = now
		}
		order := &entity.CustomerOrder{
			ID:          uuid.New().String(),
			OrderNumber: in.OrderNumber,
			CustomerID:  in.CustomerID,
			OrderDate:   orderDate,
			Status:      entity.CustomerOrderEnPreparation,
			Notes:       in.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		total := decimal.Zero
		for _, line := range in.Lines {
			l := entity.CustomerOrderLine{
				ID:         uuid.New().String(),
				OrderID:    order.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			}
			total = total.Add(l.TotalPrice)
			order.Lines = append(order.Lines, l)
		}
		order.TotalAmount = total

		products, err := lockProducts(productRepo, order.Lines)
		if err != nil {
			return err
		}
		if shortfalls := availability.ProductShortfalls(order.Lines, products); len(shortfalls) > 0 {
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}
		if err := consumeProducts(productRepo, products, order.Lines); err != nil {
			return err
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
	return uc.toResponse(created), nil
}

// lockProducts carga con FOR UPDATE cada producto referenciado por las líneas.
func lockProducts(productRepo repository.ProductRepository, lines []entity.CustomerOrderLine) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(lines))
	for _, line := range lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		p, err := productRepo.GetByIDForUpdate(line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products[line.ProductID] = p
	}
	return products, nil
}

func consumeProducts(productRepo repository.ProductRepository, products map[string]*entity.Product, lines []entity.CustomerOrderLine) error {
	now := time.Now()
	for _, line := range lines {
		p := products[line.ProductID]
		p.Stock -= line.Quantity
		p.UpdatedAt = now
	}
	for _, p := range products {
		if err := productRepo.Update(p); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas y, si existe, el resumen de su entrega.
func (uc *CustomerOrderUseCase) GetByID(id string) (*dto.CustomerOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(order), nil
}

// List lista pedidos con paginación.
func (uc *CustomerOrderUseCase) List(limit, offset int) ([]*dto.CustomerOrderResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// ListByStatus lista pedidos por estado.
func (uc *CustomerOrderUseCase) ListByStatus(status string, limit, offset int) ([]*dto.CustomerOrderResponse, error) {
	if !entity.CustomerOrderTransitions.Valid(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// ListByCustomer lista pedidos de un cliente.
func (uc *CustomerOrderUseCase) ListByCustomer(customerID string, limit, offset int) ([]*dto.CustomerOrderResponse, error) {
	list, err := uc.orderRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// ListWithoutDelivery pedidos pendientes de que se les planifique entrega.
func (uc *CustomerOrderUseCase) ListWithoutDelivery(limit, offset int) ([]*dto.CustomerOrderResponse, error) {
	list, err := uc.orderRepo.ListWithoutDelivery(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// UpdateStatus aplica una transición según la tabla. LIVREE es terminal y el
// cambio no mueve stock: el consumo ya ocurrió en la creación.
func (uc *CustomerOrderUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*dto.CustomerOrderResponse, error) {
	if !entity.CustomerOrderTransitions.Valid(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.CustomerOrder
	err := uc.txRunner.RunSales(ctx, func(
		orderRepo repository.CustomerOrderRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.CustomerOrderLivree {
			return domain.ErrConflict
		}
		if !entity.CustomerOrderTransitions.Allowed(order.Status, newStatus) {
			return domain.ErrConflict
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
	return uc.toResponse(updated), nil
}

// Delete elimina un pedido aún en preparación y devuelve el stock consumido
// al crearlo, línea a línea, en la misma transacción. Un pedido ya en ruta o
// entregado no se puede eliminar.
func (uc *CustomerOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunSales(ctx, func(
		orderRepo repository.CustomerOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.CustomerOrderEnRoute || order.Status == entity.CustomerOrderLivree {
			return domain.ErrConflict
		}
		now := time.Now()
		for _, line := range order.Lines {
			p, err := productRepo.GetByIDForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			p.Stock += line.Quantity
			p.UpdatedAt = now
			if err := productRepo.Update(p); err != nil {
				return err
			}
		}
		return orderRepo.Delete(id)
	})
}

func (uc *CustomerOrderUseCase) toResponse(o *entity.CustomerOrder) *dto.CustomerOrderResponse {
	resp := &dto.CustomerOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.CustomerOrderLineResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	if d, err := uc.deliveryRepo.GetByOrderID(o.ID); err == nil && d != nil {
		resp.Delivery = &dto.DeliverySummary{
			ID:             d.ID,
			Status:         d.Status,
			TrackingNumber: d.TrackingNumber,
			Driver:         d.Driver,
		}
	}
	return resp
}

func (uc *CustomerOrderUseCase) toResponses(list []*entity.CustomerOrder) []*dto.CustomerOrderResponse {
	out := make([]*dto.CustomerOrderResponse, len(list))
	for i, o := range list {
		out[i] = uc.toResponse(o)
	}
	return out
}
