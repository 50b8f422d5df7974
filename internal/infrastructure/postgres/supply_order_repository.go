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

var _ repository.SupplyOrderRepository = (*SupplyOrderRepo)(nil)

const supplyOrderColumns = `id, order_number, supplier_id, order_date, status, total_amount, created_at, updated_at`

// SupplyOrderRepo implementación de SupplyOrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en supply_order_lines y se cargan con la orden.
type SupplyOrderRepo struct {
	q Querier
}

// NewSupplyOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyOrderRepository(q Querier) *SupplyOrderRepo {
	return &SupplyOrderRepo{q: q}
}

// Create persiste la orden con todas sus líneas.
func (r *SupplyOrderRepo) Create(o *entity.SupplyOrder) error {
	query := `
		INSERT INTO supply_orders (id, order_number, supplier_id, order_date, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.OrderNumber, o.SupplierID, o.OrderDate, o.Status, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply order: %w", err)
	}
	for _, l := range o.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO supply_order_lines (id, supply_order_id, raw_material_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.SupplyOrderID, l.RawMaterialID, l.Quantity, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert supply order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *SupplyOrderRepo) GetByID(id string) (*entity.SupplyOrder, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene la orden bloqueando la fila (SELECT FOR UPDATE).
func (r *SupplyOrderRepo) GetByIDForUpdate(id string) (*entity.SupplyOrder, error) {
	return r.getByID(id, true)
}

func (r *SupplyOrderRepo) getByID(id string, forUpdate bool) (*entity.SupplyOrder, error) {
	query := `SELECT ` + supplyOrderColumns + ` FROM supply_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.SupplyOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SupplyOrderRepo) loadLines(o *entity.SupplyOrder) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, supply_order_id, raw_material_id, quantity, unit_price
		 FROM supply_order_lines WHERE supply_order_id = $1`, o.ID,
	)
	if err != nil {
		return fmt.Errorf("load supply order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SupplyOrderLine
		if err := rows.Scan(&l.ID, &l.SupplyOrderID, &l.RawMaterialID, &l.Quantity, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan supply order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}

// ExistsByOrderNumber indica si ya existe una orden con ese número.
func (r *SupplyOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM supply_orders WHERE order_number = $1)`, orderNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists supply order: %w", err)
	}
	return exists, nil
}

// List lista órdenes con paginación (sin líneas).
func (r *SupplyOrderRepo) List(limit, offset int) ([]*entity.SupplyOrder, error) {
	query := `SELECT ` + supplyOrderColumns + ` FROM supply_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByStatus lista órdenes por estado.
func (r *SupplyOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.SupplyOrder, error) {
	query := `SELECT ` + supplyOrderColumns + ` FROM supply_orders WHERE status = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListBySupplier lista órdenes de un proveedor.
func (r *SupplyOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.SupplyOrder, error) {
	query := `SELECT ` + supplyOrderColumns + ` FROM supply_orders WHERE supplier_id = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, supplierID, limit, offset)
}

func (r *SupplyOrderRepo) list(query string, args ...any) ([]*entity.SupplyOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supply orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyOrder
	for rows.Next() {
		var o entity.SupplyOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el nuevo estado.
func (r *SupplyOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE supply_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update supply order status: %w", err)
	}
	return nil
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
func (r *SupplyOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM supply_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply order: %w", err)
	}
	return nil
}
