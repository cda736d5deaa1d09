package handlers

import (
	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services     *service.Service
	log          *logger.Logger
	snapshotsDir string
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// WithSnapshots serves camera snapshots from dir under /static/snapshots.
func (h *Handler) WithSnapshots(dir string) *Handler {
	h.snapshotsDir = dir
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.accessLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	if h.snapshotsDir != "" {
		router.Static("/static/snapshots", h.snapshotsDir)
	}

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/status", h.getStatus)
		api.GET("/log", h.getLog)
		api.GET("/settings", h.getSettings)
		api.POST("/settings", h.updateSettings)

		h.registerRegistryRoutes(api)
		h.registerHistoryRoutes(api)
	}
}

func (h *Handler) registerRegistryRoutes(api *gin.RouterGroup) {
	people := api.Group("/people")
	{
		people.GET("", h.listPeople)
		people.POST("", h.savePerson)
		people.DELETE("/:id", h.deletePerson)
	}
	points := api.Group("/points")
	{
		points.GET("", h.listPoints)
		points.POST("", h.savePoint)
		points.DELETE("/:id", h.deletePoint)
	}
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	history := api.Group("/history")
	{
		history.GET("", h.getHistory)
		// Body example: {"plate":"A123BC77","point":"Gate","direction":"IN"}
		history.POST("", h.recordDetection)
		history.POST("/dedupe", h.dedupeHistory)
	}
}
