package handlers

import (
	"heatplan/internal/logger"
	"heatplan/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket day-plan stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.authMiddleware)
	{
		h.registerSlotRoutes(api)
		h.registerHeatingRoutes(api)
		h.registerEditorRoutes(api)
		h.registerRoomRoutes(api)
		h.registerLogRoutes(api)
	}
}

// Stateless slot tooling for editor frontends: no session, no storage.
func (h *Handler) registerSlotRoutes(api *gin.RouterGroup) {
	slots := api.Group("/slots")
	{
		slots.POST("/validate", h.validateSlot)
		slots.POST("/resolve", h.resolveSlot)
		slots.POST("/suggest", h.suggestSlot)
	}
}

func (h *Handler) registerHeatingRoutes(api *gin.RouterGroup) {
	heating := api.Group("/heating")
	{
		heating.GET("/calendar", h.getCalendar)
		heating.GET("/plan", h.getDayPlan)
		heating.POST("/plan", h.savePlans)
		heating.POST("/duplicate", h.duplicatePlans)
	}
}

func (h *Handler) registerEditorRoutes(api *gin.RouterGroup) {
	editor := api.Group("/editor")
	{
		editor.POST("/open", h.openEditor)
		editor.POST("/slot", h.applyEditorSlot)
		editor.POST("/undo", h.undoEditor)
		editor.POST("/save", h.saveEditor)
		editor.POST("/discard", h.discardEditor)
	}
}

func (h *Handler) registerRoomRoutes(api *gin.RouterGroup) {
	rooms := api.Group("/rooms")
	{
		rooms.GET("/", h.listRooms)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
