package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const productionOrderColumns = `id, order_number, product_id, quantity, status, priority, order_date, start_date, estimated_end_date, actual_end_date, estimated_hours, created_at, updated_at`

// ProductionOrderRepo implementación de ProductionOrderRepository sobre PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, order_number, product_id, quantity, status, priority, order_date, start_date, estimated_end_date, actual_end_date, estimated_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.OrderNumber, o.ProductID, o.Quantity, o.Status, o.Priority, o.OrderDate,
		o.StartDate, o.EstimatedEndDate, o.ActualEndDate, o.EstimatedHours, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene la orden bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductionOrderRepo) GetByIDForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.getByID(id, true)
}

func (r *ProductionOrderRepo) getByID(id string, forUpdate bool) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.ProductID, &o.Quantity, &o.Status, &o.Priority, &o.OrderDate,
		&o.StartDate, &o.EstimatedEndDate, &o.ActualEndDate, &o.EstimatedHours, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// ExistsByOrderNumber indica si ya existe una orden con ese número.
func (r *ProductionOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM production_orders WHERE order_number = $1)`, orderNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists production order: %w", err)
	}
	return exists, nil
}

// List lista órdenes con paginación.
func (r *ProductionOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByStatus lista órdenes por estado.
func (r *ProductionOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE status = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByPriority lista órdenes por prioridad.
func (r *ProductionOrderRepo) ListByPriority(priority string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE priority = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, priority, limit, offset)
}

// ListOrderedByPriority cola de producción: URGENT primero, luego por fecha de orden.
func (r *ProductionOrderRepo) ListOrderedByPriority(limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders
		WHERE status = 'EN_ATTENTE'
		ORDER BY CASE priority
			WHEN 'URGENT' THEN 0
			WHEN 'HIGH' THEN 1
			WHEN 'STANDARD' THEN 2
			ELSE 3
		END, order_date
		LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *ProductionOrderRepo) list(query string, args ...any) ([]*entity.ProductionOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.ProductID, &o.Quantity, &o.Status, &o.Priority, &o.OrderDate,
			&o.StartDate, &o.EstimatedEndDate, &o.ActualEndDate, &o.EstimatedHours, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza estado, fechas y prioridad de una orden.
func (r *ProductionOrderRepo) Update(o *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET status = $2, priority = $3, start_date = $4, estimated_end_date = $5, actual_end_date = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Status, o.Priority, o.StartDate, o.EstimatedEndDate, o.ActualEndDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

// Delete elimina una orden por ID.
func (r *ProductionOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production order: %w", err)
	}
	return nil
}
