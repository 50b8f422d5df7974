package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// DeliveryUseCase máquina de estados de entregas:
// PLANIFIEE -> EN_COURS -> LIVREE. Cada pedido admite a lo sumo una entrega;
// arrancarla o completarla arrastra el estado del pedido (EN_ROUTE / LIVREE).
type DeliveryUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.CustomerOrderRepository
	customerRepo repository.CustomerRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.CustomerOrderRepository,
	customerRepo repository.CustomerRepository,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// newTrackingNumber TRK- seguido de los primeros 8 caracteres de un UUID,
// en mayúsculas.
func newTrackingNumber() string {
	return "TRK-" + strings.ToUpper(uuid.New().String()[:8])
}

// Create planifica la entrega de un pedido que sigue en EN_PREPARATION y aún
// no tiene entrega. Dirección y ciudad vacías se completan con las del
// cliente; el número de seguimiento se genera aquí.
func (uc *DeliveryUseCase) Create(ctx context.Context, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.OrderID == "" || in.DeliveryCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Delivery
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.CustomerOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.CustomerOrderEnPreparation {
			return domain.ErrConflict
		}
		existing, err := deliveryRepo.GetByOrderID(in.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}

		address, city := in.DeliveryAddress, in.City
		if address == "" || city == "" {
			customer, err := uc.customerRepo.GetByID(order.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrNotFound
			}
			if address == "" {
				address = customer.Address
			}
			if city == "" {
				city = customer.City
			}
		}

		now := time.Now()
		d := &entity.Delivery{
			ID:              uuid.New().String(),
			OrderID:         in.OrderID,
			DeliveryAddress: address,
			City:            city,
			Driver:          in.Driver,
			Vehicle:         in.Vehicle,
			Status:          entity.DeliveryPlanifiee,
			ScheduledDate:   in.ScheduledDate,
			DeliveryCost:    in.DeliveryCost,
			TrackingNumber:  newTrackingNumber(),
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := deliveryRepo.Create(d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(created), nil
}

// GetByID obtiene una entrega.
func (uc *DeliveryUseCase) GetByID(id string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(d), nil
}

// GetByTrackingNumber consulta pública de seguimiento.
func (uc *DeliveryUseCase) GetByTrackingNumber(trackingNumber string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByTrackingNumber(trackingNumber)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(d), nil
}

// List lista entregas con paginación.
func (uc *DeliveryUseCase) List(limit, offset int) ([]*dto.DeliveryResponse, error) {
	list, err := uc.deliveryRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponses(list), nil
}

// ListByStatus lista entregas por estado.
func (uc *DeliveryUseCase) ListByStatus(status string, limit, offset int) ([]*dto.DeliveryResponse, error) {
	if !entity.DeliveryTransitions.Valid(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.deliveryRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponses(list), nil
}

// ListByDriver hoja de ruta de un conductor.
func (uc *DeliveryUseCase) ListByDriver(driver string, limit, offset int) ([]*dto.DeliveryResponse, error) {
	list, err := uc.deliveryRepo.ListByDriver(driver, limit, offset)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponses(list), nil
}

// ListByScheduledDate entregas planificadas para un día.
func (uc *DeliveryUseCase) ListByScheduledDate(date time.Time, limit, offset int) ([]*dto.DeliveryResponse, error) {
	list, err := uc.deliveryRepo.ListByScheduledDate(date, limit, offset)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponses(list), nil
}

// Start PLANIFIEE -> EN_COURS. Fuerza el pedido a EN_ROUTE en la misma
// transacción.
func (uc *DeliveryUseCase) Start(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	return uc.advance(ctx, id, entity.DeliveryEnCours)
}

// Complete EN_COURS -> LIVREE. Sella actualDeliveryDate y fuerza el pedido a
// LIVREE en la misma transacción.
func (uc *DeliveryUseCase) Complete(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	return uc.advance(ctx, id, entity.DeliveryLivree)
}

func (uc *DeliveryUseCase) advance(ctx context.Context, id, newStatus string) (*dto.DeliveryResponse, error) {
	var updated *entity.Delivery
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.CustomerOrderRepository,
	) error {
		d, err := deliveryRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if !entity.DeliveryTransitions.Allowed(d.Status, newStatus) {
			return domain.ErrConflict
		}
		now := time.Now()
		d.Status = newStatus
		d.UpdatedAt = now

		orderStatus := entity.CustomerOrderEnRoute
		if newStatus == entity.DeliveryLivree {
			d.ActualDeliveryDate = &now
			orderStatus = entity.CustomerOrderLivree
		}
		if err := deliveryRepo.Update(d); err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(d.OrderID, orderStatus); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(updated), nil
}

// UpdateStatus despacha a Start/Complete según el destino; no hay otras
// escrituras de estado válidas para una entrega.
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*dto.DeliveryResponse, error) {
	switch newStatus {
	case entity.DeliveryEnCours:
		return uc.Start(ctx, id)
	case entity.DeliveryLivree:
		return uc.Complete(ctx, id)
	case entity.DeliveryPlanifiee:
		return nil, domain.ErrConflict
	}
	return nil, domain.ErrInvalidInput
}

// Update modifica los campos logísticos de una entrega no completada.
func (uc *DeliveryUseCase) Update(id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.DeliveryCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.Status == entity.DeliveryLivree {
		return nil, domain.ErrConflict
	}
	d.DeliveryAddress = in.DeliveryAddress
	d.City = in.City
	d.Driver = in.Driver
	d.Vehicle = in.Vehicle
	d.ScheduledDate = in.ScheduledDate
	d.DeliveryCost = in.DeliveryCost
	d.Notes = in.Notes
	d.UpdatedAt = time.Now()
	if err := uc.deliveryRepo.Update(d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// Delete solo elimina entregas aún planificadas; una entrega en curso o
// completada deja rastro en el pedido y no se borra.
func (uc *DeliveryUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		_ repository.CustomerOrderRepository,
	) error {
		d, err := deliveryRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DeliveryPlanifiee {
			return domain.ErrConflict
		}
		return deliveryRepo.Delete(id)
	})
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:                 d.ID,
		OrderID:            d.OrderID,
		DeliveryAddress:    d.DeliveryAddress,
		City:               d.City,
		Driver:             d.Driver,
		Vehicle:            d.Vehicle,
		Status:             d.Status,
		ScheduledDate:      d.ScheduledDate,
		ActualDeliveryDate: d.ActualDeliveryDate,
		DeliveryCost:       d.DeliveryCost,
		TrackingNumber:     d.TrackingNumber,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func toDeliveryResponses(list []*entity.Delivery) []*dto.DeliveryResponse {
	out := make([]*dto.DeliveryResponse, len(list))
	for i, d := range list {
		out[i] = toDeliveryResponse(d)
	}
	return out
}
