package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, order_id, delivery_address, city, driver, vehicle, status, scheduled_date, actual_delivery_date, delivery_cost, tracking_number, notes, created_at, updated_at`

// DeliveryRepo implementación de DeliveryRepository sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste una entrega. order_id y tracking_number son únicos.
func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, order_id, delivery_address, city, driver, vehicle, status, scheduled_date, actual_delivery_date, delivery_cost, tracking_number, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.OrderID, d.DeliveryAddress, d.City, d.Driver, d.Vehicle, d.Status,
		d.ScheduledDate, d.ActualDeliveryDate, d.DeliveryCost, d.TrackingNumber, d.Notes, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.getOne(`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la entrega bloqueando la fila (SELECT FOR UPDATE).
func (r *DeliveryRepo) GetByIDForUpdate(id string) (*entity.Delivery, error) {
	return r.getOne(`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id)
}

// GetByOrderID devuelve la entrega del pedido, o (nil, nil) si no tiene.
func (r *DeliveryRepo) GetByOrderID(orderID string) (*entity.Delivery, error) {
	return r.getOne(`SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1`, orderID)
}

// GetByTrackingNumber consulta por número de seguimiento.
func (r *DeliveryRepo) GetByTrackingNumber(trackingNumber string) (*entity.Delivery, error) {
	return r.getOne(`SELECT `+deliveryColumns+` FROM deliveries WHERE tracking_number = $1`, trackingNumber)
}

func (r *DeliveryRepo) getOne(query string, arg any) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&d.ID, &d.OrderID, &d.DeliveryAddress, &d.City, &d.Driver, &d.Vehicle, &d.Status,
		&d.ScheduledDate, &d.ActualDeliveryDate, &d.DeliveryCost, &d.TrackingNumber, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

// List lista entregas con paginación.
func (r *DeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByStatus lista entregas por estado.
func (r *DeliveryRepo) ListByStatus(status string, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByDriver hoja de ruta de un conductor.
func (r *DeliveryRepo) ListByDriver(driver string, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE driver = $1 ORDER BY scheduled_date LIMIT $2 OFFSET $3`
	return r.list(query, driver, limit, offset)
}

// ListByScheduledDate entregas planificadas para un día concreto.
func (r *DeliveryRepo) ListByScheduledDate(date time.Time, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE scheduled_date::date = $1::date ORDER BY scheduled_date LIMIT $2 OFFSET $3`
	return r.list(query, date, limit, offset)
}

func (r *DeliveryRepo) list(query string, args ...any) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DeliveryAddress, &d.City, &d.Driver, &d.Vehicle, &d.Status,
			&d.ScheduledDate, &d.ActualDeliveryDate, &d.DeliveryCost, &d.TrackingNumber, &d.Notes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza una entrega.
func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET delivery_address = $2, city = $3, driver = $4, vehicle = $5, status = $6,
		    scheduled_date = $7, actual_delivery_date = $8, delivery_cost = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.DeliveryAddress, d.City, d.Driver, d.Vehicle, d.Status,
		d.ScheduledDate, d.ActualDeliveryDate, d.DeliveryCost, d.Notes, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	return nil
}

// Delete elimina una entrega por ID.
func (r *DeliveryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}
