package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos y de su lista de materiales (BOM).
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	bomRepo      repository.BillOfMaterialRepository
	materialRepo repository.RawMaterialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	bomRepo repository.BillOfMaterialRepository,
	materialRepo repository.RawMaterialRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, bomRepo: bomRepo, materialRepo: materialRepo}
}

// Create da de alta un producto con su BOM opcional. El nombre es único;
// el par (producto, material) es único dentro de la BOM.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Stock < 0 || in.ProductionTimeHours < 0 {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.productRepo.ExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	// La BOM completa se valida ANTES de persistir nada: una línea inválida
	// no debe dejar un producto huérfano sin su lista de materiales.
	seen := make(map[string]struct{}, len(in.BillOfMaterials))
	for _, line := range in.BillOfMaterials {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := seen[line.MaterialID]; dup {
			return nil, domain.ErrDuplicate
		}
		seen[line.MaterialID] = struct{}{}
		m, err := uc.materialRepo.GetByID(line.MaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	p := &entity.Product{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		ProductionTimeHours: in.ProductionTimeHours,
		Cost:                in.Cost,
		Stock:               in.Stock,
		MinimumStock:        in.MinimumStock,
		Unit:                in.Unit,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}

	var boms []*entity.BillOfMaterial
	if len(in.BillOfMaterials) > 0 {
		for _, line := range in.BillOfMaterials {
			boms = append(boms, &entity.BillOfMaterial{
				ID:         uuid.New().String(),
				ProductID:  p.ID,
				MaterialID: line.MaterialID,
				Quantity:   line.Quantity,
			})
		}
		if err := uc.bomRepo.CreateAll(boms); err != nil {
			return nil, err
		}
	}
	return toProductResponse(p, boms), nil
}

// GetByID obtiene un producto con su BOM.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	boms, err := uc.bomRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, boms), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Search busca por nombre.
func (uc *ProductUseCase) Search(term string, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.Search(term, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListLowStock productos con stock en o bajo el mínimo.
func (uc *ProductUseCase) ListLowStock(limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Update modifica campos descriptivos; el stock se mueve por órdenes.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != p.Name {
		exists, err := uc.productRepo.ExistsByName(in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		p.Name = in.Name
	}
	p.ProductionTimeHours = in.ProductionTimeHours
	p.Cost = in.Cost
	p.MinimumStock = in.MinimumStock
	p.Unit = in.Unit
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// UpdateStock escritura absoluta del stock de producto (ajuste de inventario).
func (uc *ProductUseCase) UpdateStock(id string, newStock int) (*dto.ProductResponse, error) {
	if newStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Stock = newStock
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// Delete elimina un producto sin órdenes de producción asociadas.
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountProductionOrders(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	if err := uc.bomRepo.DeleteByProduct(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product, boms []*entity.BillOfMaterial) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		ProductionTimeHours: p.ProductionTimeHours,
		Cost:                p.Cost,
		Stock:               p.Stock,
		MinimumStock:        p.MinimumStock,
		Unit:                p.Unit,
		LowStock:            p.LowStock(),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for _, bom := range boms {
		resp.BillOfMaterials = append(resp.BillOfMaterials, dto.BOMLineResponse{
			ID:         bom.ID,
			MaterialID: bom.MaterialID,
			Quantity:   bom.Quantity,
		})
	}
	return resp
}

func toProductResponses(list []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, len(list))
	for i, p := range list {
		out[i] = toProductResponse(p, nil)
	}
	return out
}
