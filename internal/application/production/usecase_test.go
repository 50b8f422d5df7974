package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/application/production"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductionOrderRepo struct {
	orders map[string]*entity.ProductionOrder
}

func newFakeProductionOrderRepo() *fakeProductionOrderRepo {
	return &fakeProductionOrderRepo{orders: make(map[string]*entity.ProductionOrder)}
}

func (r *fakeProductionOrderRepo) Create(o *entity.ProductionOrder) error {
	r.orders[o.ID] = o
	return nil
}
func (r *fakeProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return r.orders[id], nil
}
func (r *fakeProductionOrderRepo) GetByIDForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.orders[id], nil
}
func (r *fakeProductionOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeProductionOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	out := make([]*entity.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}
func (r *fakeProductionOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeProductionOrderRepo) ListByPriority(priority string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.orders {
		if o.Priority == priority {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeProductionOrderRepo) ListOrderedByPriority(limit, offset int) ([]*entity.ProductionOrder, error) {
	return r.List(limit, offset)
}
func (r *fakeProductionOrderRepo) Update(o *entity.ProductionOrder) error {
	r.orders[o.ID] = o
	return nil
}
func (r *fakeProductionOrderRepo) Delete(id string) error {
	delete(r.orders, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) ExistsByName(name string) (bool, error) { return false, nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Search(term string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) CountProductionOrders(productID string) (int64, error) {
	return 0, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeBOMRepo struct {
	boms map[string][]*entity.BillOfMaterial // productID -> líneas
}

func newFakeBOMRepo() *fakeBOMRepo {
	return &fakeBOMRepo{boms: make(map[string][]*entity.BillOfMaterial)}
}

func (r *fakeBOMRepo) CreateAll(boms []*entity.BillOfMaterial) error {
	for _, b := range boms {
		r.boms[b.ProductID] = append(r.boms[b.ProductID], b)
	}
	return nil
}
func (r *fakeBOMRepo) ListByProduct(productID string) ([]*entity.BillOfMaterial, error) {
	return r.boms[productID], nil
}
func (r *fakeBOMRepo) ExistsByProductAndMaterial(productID, materialID string) (bool, error) {
	for _, b := range r.boms[productID] {
		if b.MaterialID == materialID {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeBOMRepo) DeleteByProduct(productID string) error {
	delete(r.boms, productID)
	return nil
}

type fakeMaterialRepo struct {
	materials map[string]*entity.RawMaterial
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[string]*entity.RawMaterial)}
}

func (r *fakeMaterialRepo) Create(m *entity.RawMaterial) error { r.materials[m.ID] = m; return nil }
func (r *fakeMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	return r.materials[id], nil
}
func (r *fakeMaterialRepo) GetByIDForUpdate(id string) (*entity.RawMaterial, error) {
	return r.materials[id], nil
}
func (r *fakeMaterialRepo) ExistsByName(name string) (bool, error) { return false, nil }
func (r *fakeMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	return nil, nil
}
func (r *fakeMaterialRepo) Search(term string, limit, offset int) ([]*entity.RawMaterial, error) {
	return nil, nil
}
func (r *fakeMaterialRepo) ListLowStock(limit, offset int) ([]*entity.RawMaterial, error) {
	return nil, nil
}
func (r *fakeMaterialRepo) Update(m *entity.RawMaterial) error { r.materials[m.ID] = m; return nil }
func (r *fakeMaterialRepo) CountSupplyOrderLines(materialID string) (int64, error) {
	return 0, nil
}
func (r *fakeMaterialRepo) Delete(id string) error { delete(r.materials, id); return nil }

type fakeTxRunner struct {
	orderRepo    repository.ProductionOrderRepository
	productRepo  repository.ProductRepository
	bomRepo      repository.BillOfMaterialRepository
	materialRepo repository.RawMaterialRepository
}

func (r *fakeTxRunner) RunProduction(_ context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	productRepo repository.ProductRepository,
	bomRepo repository.BillOfMaterialRepository,
	materialRepo repository.RawMaterialRepository,
) error) error {
	return fn(r.orderRepo, r.productRepo, r.bomRepo, r.materialRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type productionFixture struct {
	uc        *production.ProductionOrderUseCase
	orders    *fakeProductionOrderRepo
	products  *fakeProductRepo
	boms      *fakeBOMRepo
	materials *fakeMaterialRepo
}

func newProductionFixture() *productionFixture {
	orders := newFakeProductionOrderRepo()
	products := newFakeProductRepo()
	boms := newFakeBOMRepo()
	materials := newFakeMaterialRepo()
	tx := &fakeTxRunner{orderRepo: orders, productRepo: products, bomRepo: boms, materialRepo: materials}
	return &productionFixture{
		uc:        production.NewProductionOrderUseCase(tx, orders, products, boms),
		orders:    orders,
		products:  products,
		boms:      boms,
		materials: materials,
	}
}

// seedProduct producto con su BOM: pares (materialID, cantidad por unidad).
func (f *productionFixture) seedProduct(id string, hoursPerUnit, stock int, bom map[string]int) {
	f.products.products[id] = &entity.Product{
		ID: id, Name: "Producto " + id, ProductionTimeHours: hoursPerUnit, Stock: stock,
	}
	for materialID, qty := range bom {
		f.boms.boms[id] = append(f.boms.boms[id], &entity.BillOfMaterial{
			ID: id + "-" + materialID, ProductID: id, MaterialID: materialID, Quantity: qty,
		})
	}
}

func (f *productionFixture) seedMaterial(id, name string, stock int) {
	f.materials.materials[id] = &entity.RawMaterial{ID: id, Name: name, Stock: stock, Unit: "kg"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionOrderCreate_OK(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 100)
	f.seedProduct("p1", 3, 0, map[string]int{"m1": 2})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-001",
		ProductID:   "p1",
		Quantity:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionOrderEnAttente, resp.Status)
	assert.Equal(t, entity.PriorityStandard, resp.Priority, "prioridad vacía se interpreta como STANDARD")
	assert.Equal(t, 30, resp.EstimatedHours, "3 h/unidad × 10 unidades")

	// La creación solo valida: el consumo se difiere al arranque.
	m1, _ := f.materials.GetByID("m1")
	assert.Equal(t, 100, m1.Stock)
}

// Caso: el producto necesita 50 unidades de material y solo hay 20. El rechazo
// debe detallar el faltante con necesidad y disponibilidad.
func TestProductionOrderCreate_StockInsuficiente_DetallaFaltantes(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 20)
	f.seedMaterial("m2", "Tornillos", 500)
	f.seedProduct("p1", 1, 0, map[string]int{"m1": 5, "m2": 8})

	_, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-002",
		ProductID:   "p1",
		Quantity:    10, // necesita 50 de m1 (hay 20) y 80 de m2 (hay 500)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortfalls, 1, "solo m1 está en déficit")
	assert.Contains(t, err.Error(), "Acero (need 50, available 20)")
}

func TestProductionOrderCreate_PrioridadInvalida(t *testing.T) {
	f := newProductionFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-003", ProductID: "p1", Quantity: 1, Priority: "CRITICAL",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductionOrderCreate_ProductoInexistente(t *testing.T) {
	f := newProductionFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-004", ProductID: "nope", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Start
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionOrderStart_ConsumeMaterialesYFijaFechas(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 100)
	f.seedMaterial("m2", "Tornillos", 200)
	f.seedProduct("p1", 2, 0, map[string]int{"m1": 3, "m2": 10})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-010", ProductID: "p1", Quantity: 10,
	})
	require.NoError(t, err)

	started, err := f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionOrderEnProduction, started.Status)
	require.NotNil(t, started.StartDate)
	require.NotNil(t, started.EstimatedEndDate)

	// 2 h/unidad × 10 = 20 h → ceil-round(20/8) = 3 jornadas.
	days := int(started.EstimatedEndDate.Sub(*started.StartDate).Hours() / 24)
	assert.Equal(t, 3, days, "20 horas son 3 jornadas de 8 h (redondeo, mínimo 1)")

	m1, _ := f.materials.GetByID("m1")
	m2, _ := f.materials.GetByID("m2")
	assert.Equal(t, 70, m1.Stock, "100 − 3×10")
	assert.Equal(t, 100, m2.Stock, "200 − 10×10")
}

// El stock pudo agotarse entre la creación y el arranque: Start revalida.
func TestProductionOrderStart_RevalidaDisponibilidad(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 50)
	f.seedProduct("p1", 1, 0, map[string]int{"m1": 5})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-011", ProductID: "p1", Quantity: 10,
	})
	require.NoError(t, err)

	// Otro proceso consumió material antes del arranque.
	m1, _ := f.materials.GetByID("m1")
	m1.Stock = 30

	_, err = f.uc.Start(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := f.orders.GetByID(resp.ID)
	assert.Equal(t, entity.ProductionOrderEnAttente, got.Status, "el arranque fallido no cambia el estado")
	assert.Equal(t, 30, m1.Stock, "el arranque fallido no consume nada")
}

func TestProductionOrderStart_SoloDesdeEnAttente(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 100)
	f.seedProduct("p1", 1, 0, map[string]int{"m1": 1})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-012", ProductID: "p1", Quantity: 1,
	})
	require.NoError(t, err)
	_, err = f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)

	_, err = f.uc.Start(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden ya arrancada no se arranca dos veces")
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionOrderComplete_IncrementaStockProducto(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 100)
	f.seedProduct("p1", 1, 5, map[string]int{"m1": 1})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-020", ProductID: "p1", Quantity: 12,
	})
	require.NoError(t, err)
	_, err = f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)

	done, err := f.uc.Complete(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionOrderTermine, done.Status)
	require.NotNil(t, done.ActualEndDate)

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, 17, p1.Stock, "5 existentes + 12 fabricados")
}

func TestProductionOrderComplete_SoloDesdeEnProduction(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 100)
	f.seedProduct("p1", 1, 0, map[string]int{"m1": 1})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-021", ProductID: "p1", Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "no se puede terminar una orden que no arrancó")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus — despacho
// ──────────────────────────────────────────────────────────────────────────────

// El cambio de estado genérico despacha a Start/Complete: pedir EN_PRODUCTION
// equivale a arrancar, con sus efectos de stock.
func TestProductionOrderUpdateStatus_DespachaAStart(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 10)
	f.seedProduct("p1", 1, 0, map[string]int{"m1": 1})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-030", ProductID: "p1", Quantity: 4,
	})
	require.NoError(t, err)

	updated, err := f.uc.UpdateStatus(context.Background(), resp.ID, entity.ProductionOrderEnProduction)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionOrderEnProduction, updated.Status)
	require.NotNil(t, updated.StartDate, "el despacho a Start fija fechas")

	m1, _ := f.materials.GetByID("m1")
	assert.Equal(t, 6, m1.Stock, "el despacho a Start consume materiales")
}

func TestProductionOrderUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newProductionFixture()
	_, err := f.uc.UpdateStatus(context.Background(), "x", "PAUSE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionOrderDelete_Guardas(t *testing.T) {
	f := newProductionFixture()
	f.seedMaterial("m1", "Acero", 100)
	f.seedProduct("p1", 1, 0, map[string]int{"m1": 1})

	resp, err := f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-040", ProductID: "p1", Quantity: 1,
	})
	require.NoError(t, err)

	// Pendiente: se puede eliminar.
	require.NoError(t, f.uc.Delete(context.Background(), resp.ID))

	resp, err = f.uc.Create(context.Background(), dto.CreateProductionOrderRequest{
		OrderNumber: "OP-041", ProductID: "p1", Quantity: 1,
	})
	require.NoError(t, err)
	_, err = f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)

	// En producción: ya consumió materiales, no se elimina.
	err = f.uc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Complete(context.Background(), resp.ID)
	require.NoError(t, err)
	err = f.uc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden terminada tampoco se elimina")
}
