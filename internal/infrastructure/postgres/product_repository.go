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

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.BillOfMaterialRepository = (*BillOfMaterialRepo)(nil)

const productColumns = `id, name, production_time_hours, cost, stock, minimum_stock, unit, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, production_time_hours, cost, stock, minimum_stock, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.ProductionTimeHours, p.Cost, p.Stock, p.MinimumStock, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.getByID(id, true)
}

func (r *ProductRepo) getByID(id string, forUpdate bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.ProductionTimeHours, &p.Cost, &p.Stock, &p.MinimumStock, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ExistsByName indica si ya existe un producto con ese nombre.
func (r *ProductRepo) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Search busca por nombre.
func (r *ProductRepo) Search(term string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, term, limit, offset)
}

// ListLowStock productos con stock en o bajo el mínimo.
func (r *ProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock <= minimum_stock ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ProductionTimeHours, &p.Cost, &p.Stock, &p.MinimumStock, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto (incluido el stock, que mutan los motores).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, production_time_hours = $3, cost = $4, stock = $5, minimum_stock = $6, unit = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.ProductionTimeHours, p.Cost, p.Stock, p.MinimumStock, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// CountProductionOrders cuenta las órdenes de producción del producto.
func (r *ProductRepo) CountProductionOrders(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM production_orders WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count production orders: %w", err)
	}
	return count, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// BillOfMaterialRepo implementación de BillOfMaterialRepository sobre PostgreSQL.
type BillOfMaterialRepo struct {
	q Querier
}

// NewBillOfMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillOfMaterialRepository(q Querier) *BillOfMaterialRepo {
	return &BillOfMaterialRepo{q: q}
}

// CreateAll inserta las líneas de la BOM.
func (r *BillOfMaterialRepo) CreateAll(boms []*entity.BillOfMaterial) error {
	for _, b := range boms {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO bill_of_materials (id, product_id, raw_material_id, quantity)
			 VALUES ($1, $2, $3, $4)`,
			b.ID, b.ProductID, b.MaterialID, b.Quantity,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert bom line: %w", err)
		}
	}
	return nil
}

// ListByProduct líneas de BOM de un producto.
func (r *BillOfMaterialRepo) ListByProduct(productID string) ([]*entity.BillOfMaterial, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, raw_material_id, quantity FROM bill_of_materials WHERE product_id = $1`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillOfMaterial
	for rows.Next() {
		var b entity.BillOfMaterial
		if err := rows.Scan(&b.ID, &b.ProductID, &b.MaterialID, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ExistsByProductAndMaterial indica si el par ya está en la BOM.
func (r *BillOfMaterialRepo) ExistsByProductAndMaterial(productID, materialID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM bill_of_materials WHERE product_id = $1 AND raw_material_id = $2)`,
		productID, materialID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists bom line: %w", err)
	}
	return exists, nil
}

// DeleteByProduct elimina la BOM completa de un producto.
func (r *BillOfMaterialRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM bill_of_materials WHERE product_id = $1`, productID,
	)
	if err != nil {
		return fmt.Errorf("delete bom: %w", err)
	}
	return nil
}
