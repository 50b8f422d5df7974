package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/application/sales"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerOrderRepo struct {
	orders map[string]*entity.CustomerOrder
}

func newFakeCustomerOrderRepo() *fakeCustomerOrderRepo {
	return &fakeCustomerOrderRepo{orders: make(map[string]*entity.CustomerOrder)}
}

func (r *fakeCustomerOrderRepo) Create(o *entity.CustomerOrder) error {
	r.orders[o.ID] = o
	return nil
}
func (r *fakeCustomerOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	return r.orders[id], nil
}
func (r *fakeCustomerOrderRepo) GetByIDForUpdate(id string) (*entity.CustomerOrder, error) {
	return r.orders[id], nil
}
func (r *fakeCustomerOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeCustomerOrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	out := make([]*entity.CustomerOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}
func (r *fakeCustomerOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.CustomerOrder, error) {
	var out []*entity.CustomerOrder
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeCustomerOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerOrder, error) {
	var out []*entity.CustomerOrder
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeCustomerOrderRepo) ListWithoutDelivery(limit, offset int) ([]*entity.CustomerOrder, error) {
	return r.List(limit, offset)
}
func (r *fakeCustomerOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}
func (r *fakeCustomerOrderRepo) Delete(id string) error {
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

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	active    map[string]int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer), active: make(map[string]int64)}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) ExistsByEmail(email string) (bool, error) {
	c, _ := r.GetByEmail(email)
	return c != nil, nil
}
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Search(term string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) CountActiveOrders(customerID string) (int64, error) {
	return r.active[customerID], nil
}
func (r *fakeCustomerRepo) Delete(id string) error { delete(r.customers, id); return nil }

type fakeDeliveryRepo struct {
	deliveries map[string]*entity.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: make(map[string]*entity.Delivery)}
}

func (r *fakeDeliveryRepo) Create(d *entity.Delivery) error { r.deliveries[d.ID] = d; return nil }
func (r *fakeDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.deliveries[id], nil
}
func (r *fakeDeliveryRepo) GetByIDForUpdate(id string) (*entity.Delivery, error) {
	return r.deliveries[id], nil
}
func (r *fakeDeliveryRepo) GetByOrderID(orderID string) (*entity.Delivery, error) {
	for _, d := range r.deliveries {
		if d.OrderID == orderID {
			return d, nil
		}
	}
	return nil, nil
}
func (r *fakeDeliveryRepo) GetByTrackingNumber(trackingNumber string) (*entity.Delivery, error) {
	for _, d := range r.deliveries {
		if d.TrackingNumber == trackingNumber {
			return d, nil
		}
	}
	return nil, nil
}
func (r *fakeDeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	out := make([]*entity.Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		out = append(out, d)
	}
	return out, nil
}
func (r *fakeDeliveryRepo) ListByStatus(status string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.deliveries {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDeliveryRepo) ListByDriver(driver string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.deliveries {
		if d.Driver == driver {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDeliveryRepo) ListByScheduledDate(date time.Time, limit, offset int) ([]*entity.Delivery, error) {
	return nil, nil
}
func (r *fakeDeliveryRepo) Update(d *entity.Delivery) error { r.deliveries[d.ID] = d; return nil }
func (r *fakeDeliveryRepo) Delete(id string) error          { delete(r.deliveries, id); return nil }

type fakeSalesTxRunner struct {
	orderRepo   repository.CustomerOrderRepository
	productRepo repository.ProductRepository
}

func (r *fakeSalesTxRunner) RunSales(_ context.Context, fn func(
	orderRepo repository.CustomerOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.orderRepo, r.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type salesFixture struct {
	uc         *sales.CustomerOrderUseCase
	orders     *fakeCustomerOrderRepo
	products   *fakeProductRepo
	customers  *fakeCustomerRepo
	deliveries *fakeDeliveryRepo
}

func newSalesFixture() *salesFixture {
	orders := newFakeCustomerOrderRepo()
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	deliveries := newFakeDeliveryRepo()
	tx := &fakeSalesTxRunner{orderRepo: orders, productRepo: products}
	return &salesFixture{
		uc:         sales.NewCustomerOrderUseCase(tx, orders, customers, deliveries),
		orders:     orders,
		products:   products,
		customers:  customers,
		deliveries: deliveries,
	}
}

func (f *salesFixture) seedCustomer(id string) {
	f.customers.customers[id] = &entity.Customer{
		ID: id, Name: "Cliente " + id, Email: id + "@mail.com",
		Address: "Calle 1", City: "Bogotá",
	}
}

func (f *salesFixture) seedProduct(id, name string, stock int) {
	f.products.products[id] = &entity.Product{ID: id, Name: name, Stock: stock}
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Caso central: crear el pedido consume stock de producto inmediatamente y
// persiste los totales de línea.
func TestCustomerOrderCreate_ConsumeStock(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 30)
	f.seedProduct("p2", "Silla", 80)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-001",
		CustomerID:  "c1",
		Lines: []dto.CustomerOrderLineRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: price(100)},
			{ProductID: "p2", Quantity: 8, UnitPrice: price(25)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerOrderEnPreparation, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(price(400)), "2×100 + 8×25 = 400")
	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].TotalPrice.Equal(price(200)))

	p1, _ := f.products.GetByID("p1")
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, 28, p1.Stock, "el consumo ocurre en la creación, no en la entrega")
	assert.Equal(t, 72, p2.Stock)
}

// El rechazo por stock insuficiente enumera todas las líneas en déficit y no
// consume nada de las líneas que sí alcanzaban.
func TestCustomerOrderCreate_StockInsuficiente_NadaParcial(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 1)
	f.seedProduct("p2", "Silla", 100)
	f.seedProduct("p3", "Banco", 0)

	_, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-002",
		CustomerID:  "c1",
		Lines: []dto.CustomerOrderLineRequest{
			{ProductID: "p1", Quantity: 5, UnitPrice: price(1)},
			{ProductID: "p2", Quantity: 5, UnitPrice: price(1)},
			{ProductID: "p3", Quantity: 5, UnitPrice: price(1)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Len(t, insufficient.Shortfalls, 2, "p1 y p3 están en déficit")
	assert.Contains(t, err.Error(), "Mesa (need 5, available 1)")
	assert.Contains(t, err.Error(), "Banco (need 5, available 0)")

	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, 100, p2.Stock, "la línea suficiente tampoco se consume")
}

func TestCustomerOrderCreate_ClienteInexistente(t *testing.T) {
	f := newSalesFixture()
	f.seedProduct("p1", "Mesa", 10)
	_, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-003",
		CustomerID:  "nope",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: price(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerOrderCreate_NumeroDuplicado(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	in := dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-004",
		CustomerID:  "c1",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: price(1)}},
	}
	_, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un pedido puede repetir el mismo producto en varias líneas. El chequeo de
// disponibilidad agrega la cantidad por producto: dos líneas de 6 contra un
// stock de 10 se rechazan, aunque cada línea por separado alcanzara.
func TestCustomerOrderCreate_LineasRepetidasAgregadas(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	_, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-005",
		CustomerID:  "c1",
		Lines: []dto.CustomerOrderLineRequest{
			{ProductID: "p1", Quantity: 6, UnitPrice: price(1)},
			{ProductID: "p1", Quantity: 6, UnitPrice: price(1)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, 12, insufficient.Shortfalls[0].Needed, "6 + 6 agregado por producto")
	assert.Equal(t, 10, insufficient.Shortfalls[0].Available)

	// El stock nunca debe quedar negativo.
	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, 10, p1.Stock)
}

// Si la suma agregada sí alcanza, las líneas repetidas se consumen todas.
func TestCustomerOrderCreate_LineasRepetidasConsumoAcumulado(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	_, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-006",
		CustomerID:  "c1",
		Lines: []dto.CustomerOrderLineRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: price(1)},
			{ProductID: "p1", Quantity: 4, UnitPrice: price(1)},
		},
	})
	require.NoError(t, err)

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, 2, p1.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerOrderUpdateStatus_LivreeTerminal(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-010",
		CustomerID:  "c1",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 2, UnitPrice: price(1)}},
	})
	require.NoError(t, err)

	updated, err := f.uc.UpdateStatus(context.Background(), resp.ID, entity.CustomerOrderEnRoute)
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerOrderEnRoute, updated.Status)

	updated, err = f.uc.UpdateStatus(context.Background(), resp.ID, entity.CustomerOrderLivree)
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerOrderLivree, updated.Status)

	_, err = f.uc.UpdateStatus(context.Background(), resp.ID, entity.CustomerOrderEnRoute)
	assert.ErrorIs(t, err, domain.ErrConflict, "LIVREE es terminal")

	// El cambio de estado nunca mueve stock: ya se consumió al crear.
	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, 8, p1.Stock)
}

// EN_PREPARATION -> LIVREE directo es legal (entrega en mostrador).
func TestCustomerOrderUpdateStatus_SaltoDirectoALivree(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-011",
		CustomerID:  "c1",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: price(1)}},
	})
	require.NoError(t, err)

	updated, err := f.uc.UpdateStatus(context.Background(), resp.ID, entity.CustomerOrderLivree)
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerOrderLivree, updated.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un pedido no entregado restituye el stock línea a línea: el ciclo
// crear + eliminar deja el inventario exactamente como estaba.
func TestCustomerOrderDelete_RestituyeStock(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 30)
	f.seedProduct("p2", "Silla", 80)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-020",
		CustomerID:  "c1",
		Lines: []dto.CustomerOrderLineRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: price(1)},
			{ProductID: "p2", Quantity: 10, UnitPrice: price(1)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), resp.ID))

	p1, _ := f.products.GetByID("p1")
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, 30, p1.Stock, "crear + eliminar es neutro para el inventario")
	assert.Equal(t, 80, p2.Stock)

	_, err = f.uc.GetByID(resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerOrderDelete_EntregadoRechazado(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-021",
		CustomerID:  "c1",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: price(1)}},
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), resp.ID, entity.CustomerOrderLivree)
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un pedido entregado no se elimina ni restituye")

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, 9, p1.Stock)
}

// Un pedido que ya salió a ruta tampoco se elimina: la mercancía va en camino
// y restituir su stock lo inflaría.
func TestCustomerOrderDelete_EnRutaRechazado(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-022",
		CustomerID:  "c1",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 4, UnitPrice: price(1)}},
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), resp.ID, entity.CustomerOrderEnRoute)
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.uc.GetByID(resp.ID)
	require.NoError(t, err, "el pedido sigue existiendo")
	assert.Equal(t, entity.CustomerOrderEnRoute, got.Status)

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, 6, p1.Stock, "sin restitución: el stock consumido no vuelve")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID — resumen de entrega embebido
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerOrderGetByID_IncluyeResumenEntrega(t *testing.T) {
	f := newSalesFixture()
	f.seedCustomer("c1")
	f.seedProduct("p1", "Mesa", 10)

	resp, err := f.uc.Create(context.Background(), dto.CreateCustomerOrderRequest{
		OrderNumber: "CO-030",
		CustomerID:  "c1",
		Lines:       []dto.CustomerOrderLineRequest{{ProductID: "p1", Quantity: 1, UnitPrice: price(1)}},
	})
	require.NoError(t, err)

	got, err := f.uc.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Delivery, "sin entrega planificada el resumen va vacío")

	f.deliveries.deliveries["d1"] = &entity.Delivery{
		ID: "d1", OrderID: resp.ID, Status: entity.DeliveryPlanifiee,
		TrackingNumber: "TRK-ABCD1234", Driver: "Carlos",
	}
	got, err = f.uc.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Delivery)
	assert.Equal(t, "TRK-ABCD1234", got.Delivery.TrackingNumber)
	assert.Equal(t, "Carlos", got.Delivery.Driver)
}
