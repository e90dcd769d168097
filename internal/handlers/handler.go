package handlers

import (
	"net/http"

	_ "sanisip/docs" // registers swagger docs
	"sanisip/internal/logger"
	"sanisip/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// NewHandler constructs a new HTTP handler with dependencies. metrics may be
// nil, in which case /metrics is not registered.
func NewHandler(services *service.Service, log *logger.Logger, metrics http.Handler) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.dashboardPage)
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	// Static dashboard files through the offline cache
	router.GET("/assets/*path", h.getAsset)

	h.registerAPIRoutes(router)

	// Snapshot stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/dashboard", h.getDashboard)
		h.registerFilterRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerFilterRoutes(api *gin.RouterGroup) {
	filter := api.Group("/filter")
	{
		filter.GET("", h.getFilter)
		// Body example: {"start_date":"2026-03-01"}
		filter.POST("/start-date", h.setStartDate)
		// Body example: {"confirm":true}
		filter.POST("/reset", h.resetDaysUsed)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
