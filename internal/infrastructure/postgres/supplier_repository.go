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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, contact, email, phone, rating, lead_time_days, created_at, updated_at`

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact, email, phone, rating, lead_time_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Contact, s.Email, s.Phone, s.Rating, s.LeadTimeDays, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.Rating, &s.LeadTimeDays, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ExistsByEmail indica si ya hay un proveedor con ese email.
func (r *SupplierRepo) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM suppliers WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists supplier: %w", err)
	}
	return exists, nil
}

// List lista proveedores con paginación.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Search busca por nombre o email.
func (r *SupplierRepo) Search(term string, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, term, limit, offset)
}

func (r *SupplierRepo) list(query string, args ...any) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.Rating, &s.LeadTimeDays, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact = $3, email = $4, phone = $5, rating = $6, lead_time_days = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Contact, s.Email, s.Phone, s.Rating, s.LeadTimeDays, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// CountActiveOrders cuenta órdenes de aprovisionamiento no recibidas del proveedor.
func (r *SupplierRepo) CountActiveOrders(supplierID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM supply_orders WHERE supplier_id = $1 AND status <> 'RECUE'`, supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count supplier orders: %w", err)
	}
	return count, nil
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// ListMaterialIDs materiales que el proveedor está autorizado a suministrar.
func (r *SupplierRepo) ListMaterialIDs(supplierID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT raw_material_id FROM supplier_materials WHERE supplier_id = $1`, supplierID,
	)
	if err != nil {
		return nil, fmt.Errorf("list supplier materials: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan supplier material: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignMaterial autoriza al proveedor a suministrar el material.
func (r *SupplierRepo) AssignMaterial(supplierID, materialID string) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO supplier_materials (supplier_id, raw_material_id) VALUES ($1, $2)`,
		supplierID, materialID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("assign supplier material: %w", err)
	}
	return nil
}

// RemoveMaterial retira la autorización.
func (r *SupplierRepo) RemoveMaterial(supplierID, materialID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM supplier_materials WHERE supplier_id = $1 AND raw_material_id = $2`,
		supplierID, materialID,
	)
	if err != nil {
		return fmt.Errorf("remove supplier material: %w", err)
	}
	return nil
}
