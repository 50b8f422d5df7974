package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/supplychain/mysupply-api/internal/application/auth"
	"github.com/supplychain/mysupply-api/internal/application/catalog"
	deliveryapp "github.com/supplychain/mysupply-api/internal/application/delivery"
	"github.com/supplychain/mysupply-api/internal/application/production"
	"github.com/supplychain/mysupply-api/internal/application/sales"
	"github.com/supplychain/mysupply-api/internal/application/supply"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RawMaterialUC     *catalog.RawMaterialUseCase
	SupplierUC        *catalog.SupplierUseCase
	ProductUC         *catalog.ProductUseCase
	SupplyOrderUC     *supply.SupplyOrderUseCase
	ProductionOrderUC *production.ProductionOrderUseCase
	CustomerUC        *sales.CustomerUseCase
	CustomerOrderUC   *sales.CustomerOrderUseCase
	DeliveryUC        *deliveryapp.DeliveryUseCase
	AuthUC            *auth.AuthUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
//
// Política de roles: los tres roles leen; admin y manager escriben en el
// catálogo; los cambios de estado del ciclo de vida (recepción, producción,
// entrega) también los ejecuta operator; los borrados son de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Seguimiento público de entregas (sin token)
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	api.Get("/tracking/:trackingNumber", deliveryHandler.Track)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	manage := RequireRole(entity.RoleAdmin, entity.RoleManager)
	operate := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleOperator)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Raw materials (protegido)
	materials := protected.Group("/raw-materials")
	materialHandler := NewRawMaterialHandler(deps.RawMaterialUC)
	materials.Post("/", manage, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", manage, materialHandler.Update)
	materials.Patch("/:id/restock", operate, materialHandler.Restock)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", manage, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", manage, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)
	suppliers.Post("/:id/materials/:materialId", manage, supplierHandler.AssignMaterial)
	suppliers.Delete("/:id/materials/:materialId", manage, supplierHandler.RemoveMaterial)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", manage, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", manage, productHandler.Update)
	products.Patch("/:id/stock", operate, productHandler.UpdateStock)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Supply orders (protegido)
	supplyOrders := protected.Group("/supply-orders")
	supplyOrderHandler := NewSupplyOrderHandler(deps.SupplyOrderUC)
	supplyOrders.Post("/", manage, supplyOrderHandler.Create)
	supplyOrders.Get("/", supplyOrderHandler.List)
	supplyOrders.Get("/:id", supplyOrderHandler.GetByID)
	supplyOrders.Patch("/:id/status", operate, supplyOrderHandler.UpdateStatus)
	supplyOrders.Delete("/:id", manage, supplyOrderHandler.Delete)

	// Production orders (protegido)
	productionOrders := protected.Group("/production-orders")
	productionOrderHandler := NewProductionOrderHandler(deps.ProductionOrderUC)
	productionOrders.Post("/", manage, productionOrderHandler.Create)
	productionOrders.Get("/", productionOrderHandler.List)
	productionOrders.Get("/queue", productionOrderHandler.Queue)
	productionOrders.Get("/:id", productionOrderHandler.GetByID)
	productionOrders.Post("/:id/start", operate, productionOrderHandler.Start)
	productionOrders.Post("/:id/complete", operate, productionOrderHandler.Complete)
	productionOrders.Patch("/:id/status", operate, productionOrderHandler.UpdateStatus)
	productionOrders.Delete("/:id", manage, productionOrderHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", manage, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", manage, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Customer orders (protegido)
	customerOrders := protected.Group("/customer-orders")
	customerOrderHandler := NewCustomerOrderHandler(deps.CustomerOrderUC)
	customerOrders.Post("/", manage, customerOrderHandler.Create)
	customerOrders.Get("/", customerOrderHandler.List)
	customerOrders.Get("/:id", customerOrderHandler.GetByID)
	customerOrders.Patch("/:id/status", operate, customerOrderHandler.UpdateStatus)
	customerOrders.Delete("/:id", manage, customerOrderHandler.Delete)

	// Deliveries (protegido)
	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", manage, deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Post("/:id/start", operate, deliveryHandler.Start)
	deliveries.Post("/:id/complete", operate, deliveryHandler.Complete)
	deliveries.Patch("/:id/status", operate, deliveryHandler.UpdateStatus)
	deliveries.Put("/:id", manage, deliveryHandler.Update)
	deliveries.Delete("/:id", manage, deliveryHandler.Delete)
}
