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

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

const rawMaterialColumns = `id, name, stock, reserved_stock, stock_min, unit, last_restock_date, created_at, updated_at`

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

// Create persiste una materia prima.
func (r *RawMaterialRepo) Create(m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (id, name, stock, reserved_stock, stock_min, unit, last_restock_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Stock, m.ReservedStock, m.StockMin, m.Unit, m.LastRestockDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene la materia prima bloqueando la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetByIDForUpdate(id string) (*entity.RawMaterial, error) {
	return r.getByID(id, true)
}

func (r *RawMaterialRepo) getByID(id string, forUpdate bool) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Stock, &m.ReservedStock, &m.StockMin, &m.Unit, &m.LastRestockDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &m, nil
}

// ExistsByName indica si ya existe una materia prima con ese nombre.
func (r *RawMaterialRepo) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM raw_materials WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists raw material: %w", err)
	}
	return exists, nil
}

// List lista materias primas con paginación.
func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Search busca por nombre (contains, case-insensitive).
func (r *RawMaterialRepo) Search(term string, limit, offset int) ([]*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, term, limit, offset)
}

// ListLowStock materias primas con stock en o bajo el mínimo.
func (r *RawMaterialRepo) ListLowStock(limit, offset int) ([]*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE stock <= stock_min ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *RawMaterialRepo) list(query string, args ...any) ([]*entity.RawMaterial, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.Stock, &m.ReservedStock, &m.StockMin, &m.Unit, &m.LastRestockDate, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza una materia prima (incluido el stock, que mutan los motores).
func (r *RawMaterialRepo) Update(m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET name = $2, stock = $3, reserved_stock = $4, stock_min = $5, unit = $6, last_restock_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Stock, m.ReservedStock, m.StockMin, m.Unit, m.LastRestockDate, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}

// CountSupplyOrderLines cuenta las líneas de aprovisionamiento que referencian el material.
func (r *RawMaterialRepo) CountSupplyOrderLines(materialID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM supply_order_lines WHERE raw_material_id = $1`, materialID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count supply order lines: %w", err)
	}
	return count, nil
}

// Delete elimina una materia prima por ID.
func (r *RawMaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete raw material: %w", err)
	}
	return nil
}
