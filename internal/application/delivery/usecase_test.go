package delivery_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplychain/mysupply-api/internal/application/delivery"
	"github.com/supplychain/mysupply-api/internal/application/dto"
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
	"github.com/supplychain/mysupply-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

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

type fakeOrderRepo struct {
	orders map[string]*entity.CustomerOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.CustomerOrder)}
}

func (r *fakeOrderRepo) Create(o *entity.CustomerOrder) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.CustomerOrder, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) ExistsByOrderNumber(orderNumber string) (bool, error) { return false, nil }
func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.CustomerOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) ListWithoutDelivery(limit, offset int) ([]*entity.CustomerOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}
func (r *fakeOrderRepo) Delete(id string) error { delete(r.orders, id); return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) ExistsByEmail(email string) (bool, error)          { return false, nil }
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Search(term string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                    { return nil }
func (r *fakeCustomerRepo) CountActiveOrders(customerID string) (int64, error) { return 0, nil }
func (r *fakeCustomerRepo) Delete(id string) error                             { return nil }

type fakeTxRunner struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.CustomerOrderRepository
}

func (r *fakeTxRunner) RunDelivery(_ context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.CustomerOrderRepository,
) error) error {
	return fn(r.deliveryRepo, r.orderRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type deliveryFixture struct {
	uc         *delivery.DeliveryUseCase
	deliveries *fakeDeliveryRepo
	orders     *fakeOrderRepo
	customers  *fakeCustomerRepo
}

func newDeliveryFixture() *deliveryFixture {
	deliveries := newFakeDeliveryRepo()
	orders := newFakeOrderRepo()
	customers := newFakeCustomerRepo()
	tx := &fakeTxRunner{deliveryRepo: deliveries, orderRepo: orders}
	return &deliveryFixture{
		uc:         delivery.NewDeliveryUseCase(tx, deliveries, orders, customers),
		deliveries: deliveries,
		orders:     orders,
		customers:  customers,
	}
}

func (f *deliveryFixture) seedOrder(id, customerID, status string) {
	f.orders.orders[id] = &entity.CustomerOrder{
		ID: id, OrderNumber: "CO-" + id, CustomerID: customerID, Status: status,
	}
}

func (f *deliveryFixture) seedCustomer(id, address, city string) {
	f.customers.customers[id] = &entity.Customer{
		ID: id, Name: "Cliente " + id, Email: id + "@mail.com", Address: address, City: city,
	}
}

var trackingPattern = regexp.MustCompile(`^TRK-[0-9A-F]{8}$`)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliveryCreate_GeneraTracking(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{
		OrderID:         "o1",
		DeliveryAddress: "Carrera 7 #12-34",
		City:            "Medellín",
		Driver:          "Carlos",
		DeliveryCost:    decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryPlanifiee, resp.Status)
	assert.Regexp(t, trackingPattern, resp.TrackingNumber,
		"el tracking es TRK- más 8 hex de UUID en mayúsculas")
	assert.Equal(t, "Carrera 7 #12-34", resp.DeliveryAddress)
	assert.Equal(t, "Medellín", resp.City)
}

// Dirección y ciudad vacías se completan con las del cliente del pedido.
func TestDeliveryCreate_DireccionPorDefectoDelCliente(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1 #2-3", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1 #2-3", resp.DeliveryAddress)
	assert.Equal(t, "Bogotá", resp.City)
}

func TestDeliveryCreate_PedidoYaEnRuta(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnRoute)

	_, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"solo pedidos EN_PREPARATION admiten planificar entrega")
}

func TestDeliveryCreate_UnaEntregaPorPedido(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	_, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "cada pedido admite a lo sumo una entrega")
}

func TestDeliveryCreate_PedidoInexistente(t *testing.T) {
	f := newDeliveryFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Start / Complete — acoplamiento con el pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliveryStart_FuerzaPedidoEnRoute(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)

	started, err := f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryEnCours, started.Status)

	order, _ := f.orders.GetByID("o1")
	assert.Equal(t, entity.CustomerOrderEnRoute, order.Status,
		"arrancar la entrega arrastra el pedido a EN_ROUTE")
}

func TestDeliveryComplete_FuerzaPedidoLivree(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)
	_, err = f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)

	done, err := f.uc.Complete(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryLivree, done.Status)
	require.NotNil(t, done.ActualDeliveryDate, "completar sella la fecha real de entrega")

	order, _ := f.orders.GetByID("o1")
	assert.Equal(t, entity.CustomerOrderLivree, order.Status,
		"completar la entrega arrastra el pedido a LIVREE")
}

func TestDeliveryComplete_SoloDesdeEnCours(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "PLANIFIEE no pasa directo a LIVREE")
}

func TestDeliveryUpdateStatus_Despacho(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)

	updated, err := f.uc.UpdateStatus(context.Background(), resp.ID, entity.DeliveryEnCours)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryEnCours, updated.Status)

	order, _ := f.orders.GetByID("o1")
	assert.Equal(t, entity.CustomerOrderEnRoute, order.Status,
		"el despacho por estado tiene los mismos efectos que Start")

	_, err = f.uc.UpdateStatus(context.Background(), resp.ID, entity.DeliveryPlanifiee)
	assert.ErrorIs(t, err, domain.ErrConflict, "no hay vuelta a PLANIFIEE")

	_, err = f.uc.UpdateStatus(context.Background(), resp.ID, "PERDUE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliveryUpdate_RechazaCompletada(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)
	_, err = f.uc.Start(context.Background(), resp.ID)
	require.NoError(t, err)
	_, err = f.uc.Complete(context.Background(), resp.ID)
	require.NoError(t, err)

	_, err = f.uc.Update(resp.ID, dto.UpdateDeliveryRequest{Driver: "Otro"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeliveryDelete_SoloPlanificada(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)
	f.seedOrder("o2", "c1", entity.CustomerOrderEnPreparation)

	planned, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), planned.ID))

	inCourse, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o2"})
	require.NoError(t, err)
	_, err = f.uc.Start(context.Background(), inCourse.ID)
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), inCourse.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una entrega en curso no se borra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookups
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliveryGetByTrackingNumber(t *testing.T) {
	f := newDeliveryFixture()
	f.seedCustomer("c1", "Calle 1", "Bogotá")
	f.seedOrder("o1", "c1", entity.CustomerOrderEnPreparation)

	resp, err := f.uc.Create(context.Background(), dto.CreateDeliveryRequest{OrderID: "o1"})
	require.NoError(t, err)

	got, err := f.uc.GetByTrackingNumber(resp.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = f.uc.GetByTrackingNumber("TRK-00000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
