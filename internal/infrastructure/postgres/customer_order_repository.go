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

var _ repository.CustomerOrderRepository = (*CustomerOrderRepo)(nil)

const customerOrderColumns = `id, order_number, customer_id, order_date, total_amount, status, notes, created_at, updated_at`

// CustomerOrderRepo implementación de CustomerOrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en customer_order_lines y se cargan con el pedido.
type CustomerOrderRepo struct {
	q Querier
}

// NewCustomerOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerOrderRepository(q Querier) *CustomerOrderRepo {
	return &CustomerOrderRepo{q: q}
}

// Create persiste el pedido con todas sus líneas.
func (r *CustomerOrderRepo) Create(o *entity.CustomerOrder) error {
	query := `
		INSERT INTO customer_orders (id, order_number, customer_id, order_date, total_amount, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.OrderNumber, o.CustomerID, o.OrderDate, o.TotalAmount, o.Status, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer order: %w", err)
	}
	for _, l := range o.Lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO customer_order_lines (id, order_id, product_id, quantity, unit_price, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert customer order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *CustomerOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE).
func (r *CustomerOrderRepo) GetByIDForUpdate(id string) (*entity.CustomerOrder, error) {
	return r.getByID(id, true)
}

func (r *CustomerOrderRepo) getByID(id string, forUpdate bool) (*entity.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.CustomerOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.TotalAmount, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *CustomerOrderRepo) loadLines(o *entity.CustomerOrder) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, unit_price, total_price
		 FROM customer_order_lines WHERE order_id = $1`, o.ID,
	)
	if err != nil {
		return fmt.Errorf("load customer order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.CustomerOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.TotalPrice); err != nil {
			return fmt.Errorf("scan customer order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}

// ExistsByOrderNumber indica si ya existe un pedido con ese número.
func (r *CustomerOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM customer_orders WHERE order_number = $1)`, orderNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists customer order: %w", err)
	}
	return exists, nil
}

// List lista pedidos con paginación (sin líneas).
func (r *CustomerOrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByStatus lista pedidos por estado.
func (r *CustomerOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders WHERE status = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByCustomer lista pedidos de un cliente.
func (r *CustomerOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders WHERE customer_id = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, customerID, limit, offset)
}

// ListWithoutDelivery pedidos aún sin entrega asignada.
func (r *CustomerOrderRepo) ListWithoutDelivery(limit, offset int) ([]*entity.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders o
		WHERE NOT EXISTS (SELECT 1 FROM deliveries d WHERE d.order_id = o.id)
		ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *CustomerOrderRepo) list(query string, args ...any) ([]*entity.CustomerOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerOrder
	for rows.Next() {
		var o entity.CustomerOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.TotalAmount, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el nuevo estado.
func (r *CustomerOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customer_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update customer order status: %w", err)
	}
	return nil
}

// Delete elimina el pedido; las líneas caen por ON DELETE CASCADE.
func (r *CustomerOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customer_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer order: %w", err)
	}
	return nil
}
