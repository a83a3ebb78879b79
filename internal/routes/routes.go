package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/trackmasterhq/trackmaster-backend/internal/config"
	"github.com/trackmasterhq/trackmaster-backend/internal/handlers"
	"github.com/trackmasterhq/trackmaster-backend/internal/middleware"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	leadHandler *handlers.LeadHandler,
	clientHandler *handlers.ClientHandler,
	installerHandler *handlers.InstallerHandler,
	inventoryHandler *handlers.InventoryHandler,
	techHandler *handlers.TechHandler,
	activationHandler *handlers.ActivationHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
	userHandler *handlers.UserHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Everything below requires a valid session. Each dashboard module is
	// additionally gated by the user's accessibleModules (ADMIN bypasses).
	jwt := middleware.JWTProtected(cfg)

	api.Get("/dashboard/counts", jwt, dashboardHandler.Counts)

	leads := api.Group("/leads", jwt, middleware.ModuleRequired(models.ModuleLeads))
	leads.Get("/", leadHandler.ListLeads)
	leads.Post("/", leadHandler.CreateLead)

	clients := api.Group("/clients", jwt, middleware.ModuleRequired(models.ModuleClients))
	clients.Get("/", clientHandler.ListClients)
	clients.Get("/:id", clientHandler.GetClient)
	clients.Put("/:id", clientHandler.UpdateClient)
	clients.Delete("/:id", middleware.AdminRequired(), clientHandler.DeleteClient)
	clients.Post("/:id/vehicles", clientHandler.AddVehicle)
	api.Delete("/vehicles/:id", jwt, middleware.ModuleRequired(models.ModuleClients), clientHandler.DeleteVehicle)

	installer := api.Group("/installer", jwt, middleware.ModuleRequired(models.ModuleInstaller))
	installer.Get("/queue", installerHandler.Queue)

	inventory := api.Group("/inventory", jwt, middleware.ModuleRequired(models.ModuleInventory))
	inventory.Post("/devices", inventoryHandler.AddDevice)
	inventory.Post("/sims", inventoryHandler.AddSimCard)
	inventory.Get("/devices/search", inventoryHandler.SearchDevices)
	inventory.Get("/sims/search", inventoryHandler.SearchSimCards)
	inventory.Get("/summary", inventoryHandler.Summary)

	tech := api.Group("/tech", jwt, middleware.ModuleRequired(models.ModuleTech))
	tech.Get("/queue", techHandler.Queue)

	activation := api.Group("/activation", jwt, middleware.ModuleRequired(models.ModuleActivation))
	activation.Get("/queue", activationHandler.Queue)

	payments := api.Group("/payments", jwt, middleware.ModuleRequired(models.ModulePayments))
	payments.Get("/queue", paymentHandler.Queue)

	// Job transitions, grouped by the module that owns each step
	jobs := api.Group("/jobs", jwt)
	jobs.Post("/:id/schedule", middleware.ModuleRequired(models.ModuleLeads), leadHandler.Schedule)
	jobs.Post("/:id/lost", middleware.ModuleRequired(models.ModuleLeads), leadHandler.MarkLost)
	jobs.Post("/:id/claim", middleware.ModuleRequired(models.ModuleInstaller), installerHandler.Claim)
	jobs.Post("/:id/release", middleware.ModuleRequired(models.ModuleInstaller), installerHandler.Release)
	jobs.Post("/:id/installation", middleware.ModuleRequired(models.ModuleInstaller), installerHandler.SubmitInstallation)
	jobs.Post("/:id/configuration", middleware.ModuleRequired(models.ModuleTech), techHandler.CompleteConfiguration)
	jobs.Post("/:id/activate", middleware.ModuleRequired(models.ModuleActivation), activationHandler.Activate)
	jobs.Post("/:id/payment", middleware.ModuleRequired(models.ModulePayments), paymentHandler.RecordPayment)

	// Staff management (admin only)
	users := api.Group("/users", jwt, middleware.AdminRequired())
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
}
