package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"orangepass/internal/config"
	"orangepass/internal/middleware"
	"orangepass/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	recordService *service.RecordService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	recordHandler := NewRecordHandler(recordService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)

	// Collection routes
	r.Route("/api/collections/qrcodes/records", func(r chi.Router) {
		r.Get("/", recordHandler.List)
		r.Post("/", recordHandler.Create)
		r.Post("/updated-map", recordHandler.UpdatedMap)
		r.Patch("/{id}", recordHandler.Update)
		r.Delete("/{id}", recordHandler.Delete)
	})

	return &Handler{Router: r}
}
