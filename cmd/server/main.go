package main

import (
	"log"
	"strings"

	"boteco-backend/internal/auth"
	"boteco-backend/internal/config"
	"boteco-backend/internal/database"
	"boteco-backend/internal/export"
	"boteco-backend/internal/models"
	"boteco-backend/internal/orders"
	"boteco-backend/internal/sessions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Sessões
	protected.Get("/sessions", sessions.ListSessionsHandler())
	protected.Get("/sessions/:id", sessions.GetSessionHandler())

	// Pedidos
	protected.Post("/sessions/:id/orders", orders.CreateOrderHandler())
	protected.Get("/sessions/:id/orders", orders.ListSessionOrdersHandler())
	protected.Put("/orders/:id/status", orders.UpdateOrderStatusHandler())

	// Rotas de administrador
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Abertura/fechamento de sessão
	adminRoutes.Post("/sessions", sessions.OpenSessionHandler())
	adminRoutes.Post("/sessions/:id/close", sessions.CloseSessionHandler())

	// Exportação de relatório da sessão
	store := export.NewStore(database.DB)
	adminRoutes.Get("/sessions/:id/export", export.SessionCSVHandler(store))
	adminRoutes.Get("/sessions/:id/export/xlsx", export.SessionXLSXHandler(store))

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
