package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Proyectos-api/internal/application/analytics"
	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ClientUC       *usecase.ClientUseCase
	ProjectUC      *usecase.ProjectUseCase
	PaymentUC      *usecase.PaymentUseCase
	MeetingUC      *usecase.MeetingUseCase
	MessageUC      *usecase.MessageUseCase
	ModificacionUC *usecase.ModificacionUseCase
	HealthUC       *usecase.HealthUseCase
	DashboardUC    *analytics.DashboardUseCase

	Responder      *Responder
	Cookies        CookieConfig
	RateLimit      config.RateLimitConfig
	LimiterStorage fiber.Storage // nil = contadores en memoria
	StaticDir      string        // vacío = sin páginas
	Log            *logger.Logger
}

// Router registra las rutas de la API y de las páginas.
func Router(app *fiber.App, deps RouterDeps) {
	res := deps.Responder
	if res == nil {
		res = NewResponder(false, deps.Log)
	}
	app.Use(requestid.New(), APIVersion(), RequestLogger(deps.Log))

	api := app.Group("/api/v1",
		OptionalSession(deps.AuthUC, deps.Cookies),
		RateLimiter(deps.RateLimit, deps.LimiterStorage),
		ValidateID(),
	)

	requireSession := SessionMiddleware(deps.AuthUC, deps.Cookies, ModeAPI)
	admin := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleClient)

	// Health (público)
	api.Get("/health", NewHealthHandler(deps.HealthUC).Check)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookies, res)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/acceso", authHandler.Acceso)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	api.Post("/users", requireSession, admin, authHandler.RegisterUser)

	// Dashboard (admin)
	api.Get("/dashboard", requireSession, admin, NewDashboardHandler(deps.DashboardUC, res).Summary)

	// Clients (admin)
	clientHandler := NewClientHandler(deps.ClientUC, res)
	clients := api.Group("/clients", requireSession, admin)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Put("/", clientHandler.Update)
	clients.Delete("/", clientHandler.Delete)
	clients.Get("/:id", ValidateID(), clientHandler.GetByID)

	// Projects
	projectHandler := NewProjectHandler(deps.ProjectUC, res)
	projects := api.Group("/projects", requireSession)
	projects.Get("/", admin, projectHandler.List)
	projects.Post("/", admin, projectHandler.Create)
	projects.Put("/", admin, projectHandler.Update)
	projects.Delete("/", admin, projectHandler.Delete)
	projects.Get("/:id", ValidateID(), anyRole, RequireProjectScope("id"), projectHandler.GetByID)
	projects.Get("/:id/report", ValidateID(), anyRole, RequireProjectScope("id"), projectHandler.Report)
	projects.Put("/:id/checklist", ValidateID(), admin, projectHandler.UpdateChecklist)
	projects.Patch("/:id/checklist/:index", ValidateID(), admin, projectHandler.ToggleTask)

	// Payments
	paymentHandler := NewPaymentHandler(deps.PaymentUC, res)
	payments := api.Group("/payments", requireSession)
	payments.Get("/", anyRole, paymentHandler.List)
	payments.Post("/", admin, paymentHandler.Create)
	payments.Put("/", admin, paymentHandler.Update)
	payments.Delete("/", admin, paymentHandler.Delete)
	payments.Get("/:id", ValidateID(), anyRole, paymentHandler.GetByID)

	// Meetings
	meetingHandler := NewMeetingHandler(deps.MeetingUC, res)
	meetings := api.Group("/meetings", requireSession)
	meetings.Get("/", anyRole, meetingHandler.List)
	meetings.Post("/", admin, meetingHandler.Create)
	meetings.Put("/", admin, meetingHandler.Update)
	meetings.Delete("/", admin, meetingHandler.Delete)
	meetings.Get("/:id", ValidateID(), anyRole, meetingHandler.GetByID)

	// Messages
	messageHandler := NewMessageHandler(deps.MessageUC, res)
	messages := api.Group("/messages", requireSession)
	messages.Get("/", anyRole, messageHandler.List)
	messages.Post("/", anyRole, messageHandler.Create)
	messages.Post("/read", anyRole, messageHandler.MarkRead)
	messages.Put("/", admin, messageHandler.Update)
	messages.Delete("/", admin, messageHandler.Delete)

	// Modificaciones
	modHandler := NewModificacionHandler(deps.ModificacionUC, res)
	mods := api.Group("/modificaciones", requireSession)
	mods.Get("/", anyRole, modHandler.List)
	mods.Post("/", RequireRole(entity.RoleClient), modHandler.Create)
	mods.Put("/", admin, modHandler.UpdateEstado)

	if deps.StaticDir != "" {
		registerPages(app, deps)
	}
}
