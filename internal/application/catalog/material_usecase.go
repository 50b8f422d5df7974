package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// RawMaterialUseCase CRUD de materias primas y reaprovisionamiento manual.
// Las mutaciones de stock por delta son cosa de los motores de aprovisionamiento
// y producción; aquí solo existe la escritura absoluta de Restock.
type RawMaterialUseCase struct {
	materialRepo repository.RawMaterialRepository
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(materialRepo repository.RawMaterialRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{materialRepo: materialRepo}
}

// Create da de alta una materia prima. El nombre es único.
func (uc *RawMaterialUseCase) Create(in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if in.Name == "" || in.Stock < 0 || in.StockMin < 0 {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.materialRepo.ExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.RawMaterial{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Stock:     in.Stock,
		StockMin:  in.StockMin,
		Unit:      in.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.materialRepo.Create(m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// GetByID obtiene una materia prima.
func (uc *RawMaterialUseCase) GetByID(id string) (*dto.RawMaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(m), nil
}

// List lista materias primas con paginación.
func (uc *RawMaterialUseCase) List(limit, offset int) ([]*dto.RawMaterialResponse, error) {
	list, err := uc.materialRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

// Search busca por nombre (contains, case-insensitive).
func (uc *RawMaterialUseCase) Search(term string, limit, offset int) ([]*dto.RawMaterialResponse, error) {
	list, err := uc.materialRepo.Search(term, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

// ListLowStock materias primas con stock en o bajo el mínimo.
func (uc *RawMaterialUseCase) ListLowStock(limit, offset int) ([]*dto.RawMaterialResponse, error) {
	list, err := uc.materialRepo.ListLowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

// Update modifica los campos descriptivos. No toca el stock.
func (uc *RawMaterialUseCase) Update(id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != m.Name {
		exists, err := uc.materialRepo.ExistsByName(in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		m.Name = in.Name
	}
	m.StockMin = in.StockMin
	m.Unit = in.Unit
	m.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Restock escritura absoluta del stock con sello de fecha de reaprovisionamiento.
// Es la única vía externa de escritura absoluta; todo lo demás son deltas.
func (uc *RawMaterialUseCase) Restock(id string, newStock int) (*dto.RawMaterialResponse, error) {
	if newStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	m.Stock = newStock
	m.LastRestockDate = &now
	m.UpdatedAt = now
	if err := uc.materialRepo.Update(m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Delete elimina una materia prima si ninguna línea de aprovisionamiento la usa.
func (uc *RawMaterialUseCase) Delete(id string) error {
	m, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	count, err := uc.materialRepo.CountSupplyOrderLines(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.materialRepo.Delete(id)
}

func toMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:              m.ID,
		Name:            m.Name,
		Stock:           m.Stock,
		ReservedStock:   m.ReservedStock,
		StockMin:        m.StockMin,
		Unit:            m.Unit,
		LowStock:        m.LowStock(),
		LastRestockDate: m.LastRestockDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toMaterialResponses(list []*entity.RawMaterial) []*dto.RawMaterialResponse {
	out := make([]*dto.RawMaterialResponse, len(list))
	for i, m := range list {
		out[i] = toMaterialResponse(m)
	}
	return out
}
