package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siteproc/siteproc-api/internal/application/auth"
	appbilling "github.com/siteproc/siteproc-api/internal/application/billing"
	appdelivery "github.com/siteproc/siteproc-api/internal/application/delivery"
	"github.com/siteproc/siteproc-api/internal/application/usecase"
	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/domain/repository"
	"github.com/siteproc/siteproc-api/internal/infrastructure/accounting"
	"github.com/siteproc/siteproc-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProjectUC    *usecase.ProjectUseCase
	OrderUC      *usecase.OrderUseCase
	ExpenseUC    *usecase.ExpenseUseCase
	ProfileUC    *usecase.ProfileUseCase
	ActivityUC   *usecase.ActivityUseCase
	DeliveryUC   *appdelivery.DeliveryUseCase
	UpdateStatus *appdelivery.UpdateStatusUseCase
	Archive      *appdelivery.ArchiveUseCase
	BillingUC    *appbilling.BillingUseCase

	DeliveryRepo repository.DeliveryRepository
	CompanyRepo  repository.CompanyRepository
	OrderRepo    repository.OrderRepository
	ProjectRepo  repository.ProjectRepository
	ExpenseRepo  repository.ExpenseRepository

	NoteGenerator *pdf.DeliveryNoteGenerator
	Ledger        *accounting.LedgerExporter
	Metrics       *Metrics
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleOwner, entity.RoleAdmin)

	// Projects (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.ExpenseUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Get("/:id/expenses", projectHandler.ListExpenses)
	projects.Post("/:id/recompute", adminOnly, projectHandler.Recompute)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)

	// Deliveries (protegido)
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(
		deps.DeliveryUC, deps.UpdateStatus, deps.Archive,
		deps.DeliveryRepo, deps.CompanyRepo, deps.OrderRepo, deps.ProjectRepo,
		deps.NoteGenerator, deps.Metrics,
	)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Patch("/:id", deliveryHandler.Patch)
	deliveries.Delete("/:id", adminOnly, deliveryHandler.Archive)
	deliveries.Get("/:id/note.pdf", deliveryHandler.NotePDF)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)

	// Billing (protegido; sync solo owner/admin)
	billingGroup := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.BillingUC)
	billingGroup.Get("/preview", billingHandler.Preview)
	billingGroup.Get("/users", billingHandler.Breakdown)
	billingGroup.Post("/sync", adminOnly, billingHandler.Sync)

	// Company users (protegido; gestión solo owner/admin)
	companyGroup := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.ProfileUC)
	companyGroup.Get("/users", companyHandler.ListUsers)
	companyGroup.Get("/users/breakdown", billingHandler.Breakdown)
	companyGroup.Post("/users", adminOnly, companyHandler.CreateUser)
	companyGroup.Patch("/users/:id/role", adminOnly, companyHandler.UpdateUserRole)

	// Activity log (protegido)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.List)

	// Reports (protegido)
	reportHandler := NewReportHandler(deps.Ledger, deps.CompanyRepo, deps.ProjectRepo, deps.OrderRepo, deps.ExpenseRepo)
	protected.Get("/reports/ledger.xml", reportHandler.LedgerXML)

	// Métricas Prometheus (fuera de /api, sin auth)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
