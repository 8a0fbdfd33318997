package router

import (
	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/infrastructure/logger"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"github.com/erp/pdv/internal/interfaces/http/handler"
	"github.com/erp/pdv/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups the API handlers
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Products  *handler.ProductHandler
	Inventory *handler.InventoryHandler
	Customers *handler.CustomerHandler
	Sales     *handler.SaleHandler
	Returns   *handler.ReturnHandler
	Creditors *handler.CreditorHandler
	Expenses  *handler.ExpenseHandler
	Health    *handler.HealthHandler
}

// Options configures the HTTP engine
type Options struct {
	Logger         *zap.Logger
	Sessions       middleware.SessionParser
	ServiceName    string
	TracingEnabled bool
	Meters         *telemetry.MeterProvider
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	Swagger        bool
}

// New builds the gin engine with the middleware stack and every API route
func New(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(opts.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(opts.ServiceName, opts.TracingEnabled),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(opts.Meters),
		logger.AccessLog(log),
		middleware.Secure(),
		middleware.CORSWithConfig(opts.CORS),
	)
	if opts.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.MaxBodySize))
	}

	if opts.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.SessionAuth(opts.Sessions, log), middleware.TracingAttributeInjector())
	r.Register(
		usersGroup(h),
		productsGroup(h),
		inventoryGroup(h),
		customersGroup(h),
		salesGroup(h),
		creditorsGroup(h),
		installmentsGroup(h),
		returnsGroup(h),
		exchangesGroup(h),
		expensesGroup(h),
	)
	r.Setup(publicGroup(h))
	return engine
}

var allow = middleware.RequirePermission

func publicGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("public", "")
	g.POST("/auth/login", h.Auth.Login)
	g.GET("/health", h.Health.Health)
	return g
}

func usersGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("users", "/users").Use(allow(identity.PermissionSettings))
	g.GET("", h.Users.List)
	g.POST("", h.Users.Create)
	return g
}

func productsGroup(h Handlers) *DomainGroup {
	read := allow(identity.PermissionSales, identity.PermissionInventory)
	write := allow(identity.PermissionInventory)

	g := NewDomainGroup("products", "/products")
	g.GET("", read, h.Products.List)
	g.GET("/low-stock", read, h.Products.LowStock)
	g.GET("/:id", read, h.Products.GetByID)
	g.POST("", write, h.Products.Create)
	g.PUT("/:id", write, h.Products.Update)
	g.DELETE("/:id", write, h.Products.Delete)
	return g
}

func inventoryGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("inventory", "/inventory").Use(allow(identity.PermissionInventory))
	g.POST("/adjustments", h.Inventory.Adjust)
	g.GET("/movements", h.Inventory.ListMovements)
	return g
}

func customersGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("customers", "/customers").Use(allow(identity.PermissionSales))
	g.GET("", h.Customers.List)
	g.POST("", h.Customers.Create)
	g.GET("/:id", h.Customers.GetByID)
	g.PUT("/:id", h.Customers.Update)
	g.DELETE("/:id", h.Customers.Delete)
	return g
}

func salesGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("sales", "/sales")
	g.POST("", allow(identity.PermissionSales), h.Sales.Finalize)
	g.GET("", allow(identity.PermissionSales, identity.PermissionReports), h.Sales.List)
	g.GET("/:id", allow(identity.PermissionSales, identity.PermissionReports), h.Sales.GetByID)
	return g
}

func creditorsGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("creditors", "/creditors").Use(allow(identity.PermissionSales, identity.PermissionReports))
	g.GET("", h.Creditors.List)
	g.GET("/:id", h.Creditors.GetByID)
	g.GET("/:id/payments", h.Creditors.ListPayments)
	g.GET("/:id/installments", h.Creditors.ListInstallments)
	g.GET("/:id/next-due", h.Creditors.NextDue)
	g.GET("/:id/credit-sales", h.Creditors.ListCreditSales)
	g.GET("/:id/stats", h.Creditors.Stats)
	g.GET("/:id/report", h.Creditors.SaleReport)

	sales := allow(identity.PermissionSales)
	g.POST("", sales, h.Creditors.Create)
	g.PUT("/:id", sales, h.Creditors.Update)
	g.DELETE("/:id", sales, h.Creditors.Delete)
	g.POST("/:id/pay", sales, h.Creditors.MarkPaid)
	g.POST("/:id/payments", sales, h.Creditors.RecordPayment)
	g.POST("/:id/schedule", sales, h.Creditors.GenerateSchedule)
	g.POST("/:id/carne/send", sales, h.Creditors.SendCarne)
	return g
}

func installmentsGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("installments", "/installments").Use(allow(identity.PermissionSales))
	g.POST("/:id/pay", h.Creditors.PayInstallment)
	g.PUT("/:id/due-date", h.Creditors.RescheduleInstallment)
	return g
}

func returnsGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("returns", "/returns").Use(allow(identity.PermissionSales))
	g.POST("", h.Returns.Process)
	g.GET("", h.Returns.ListReturns)
	g.GET("/:id", h.Returns.GetReturn)
	g.PUT("/:id/status", h.Returns.UpdateReturnStatus)
	return g
}

func exchangesGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("exchanges", "/exchanges").Use(allow(identity.PermissionSales))
	g.GET("", h.Returns.ListExchanges)
	g.GET("/:id", h.Returns.GetExchange)
	g.POST("/:id/complete", h.Returns.CompleteExchange)
	g.PUT("/:id/status", h.Returns.UpdateExchangeStatus)
	return g
}

func expensesGroup(h Handlers) *DomainGroup {
	g := NewDomainGroup("expenses", "/expenses").Use(allow(identity.PermissionReports))
	g.GET("", h.Expenses.List)
	g.POST("", h.Expenses.Create)
	g.POST("/:id/pay", h.Expenses.MarkPaid)
	g.DELETE("/:id", h.Expenses.Delete)
	return g
}
