package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores y gestión de su conjunto de materiales
// elegibles. Ese conjunto es el que consulta el motor de aprovisionamiento
// antes de aceptar una orden.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	materialRepo repository.RawMaterialRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, materialRepo repository.RawMaterialRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, materialRepo: materialRepo}
}

// Create da de alta un proveedor. El email es único.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.supplierRepo.ExistsByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Contact:      in.Contact,
		Email:        in.Email,
		Phone:        in.Phone,
		Rating:       in.Rating,
		LeadTimeDays: in.LeadTimeDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return uc.toSupplierResponse(s, nil), nil
}

// GetByID obtiene un proveedor con sus materiales elegibles.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	materialIDs, err := uc.supplierRepo.ListMaterialIDs(id)
	if err != nil {
		return nil, err
	}
	return uc.toSupplierResponse(s, materialIDs), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(limit, offset int) ([]*dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, len(list))
	for i, s := range list {
		out[i] = uc.toSupplierResponse(s, nil)
	}
	return out, nil
}

// Search busca por nombre o contacto.
func (uc *SupplierUseCase) Search(term string, limit, offset int) ([]*dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.Search(term, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, len(list))
	for i, s := range list {
		out[i] = uc.toSupplierResponse(s, nil)
	}
	return out, nil
}

// Update modifica un proveedor; valida unicidad del email si cambia.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != s.Email {
		exists, err := uc.supplierRepo.ExistsByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	s.Name = in.Name
	s.Contact = in.Contact
	s.Email = in.Email
	s.Phone = in.Phone
	s.Rating = in.Rating
	s.LeadTimeDays = in.LeadTimeDays
	s.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(s); err != nil {
		return nil, err
	}
	return uc.toSupplierResponse(s, nil), nil
}

// Delete elimina un proveedor sin órdenes activas.
func (uc *SupplierUseCase) Delete(id string) error {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	count, err := uc.supplierRepo.CountActiveOrders(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.supplierRepo.Delete(id)
}

// AssignMaterial autoriza al proveedor a suministrar el material.
func (uc *SupplierUseCase) AssignMaterial(supplierID, materialID string) error {
	s, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	m, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.AssignMaterial(supplierID, materialID)
}

// RemoveMaterial retira la autorización. No afecta órdenes ya creadas.
func (uc *SupplierUseCase) RemoveMaterial(supplierID, materialID string) error {
	s, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.RemoveMaterial(supplierID, materialID)
}

func (uc *SupplierUseCase) toSupplierResponse(s *entity.Supplier, materialIDs []string) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Contact:      s.Contact,
		Email:        s.Email,
		Phone:        s.Phone,
		Rating:       s.Rating,
		LeadTimeDays: s.LeadTimeDays,
		MaterialIDs:  materialIDs,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
