package handlers

import (
	"strings"

	"secure_finance_manager/internal/logger"
	"secure_finance_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// DefaultBasePath prefixes every API route unless configured otherwise.
const DefaultBasePath = "/secure-finance-manager"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	basePath string
}

// NewHandler constructs a new HTTP handler with dependencies. An empty
// basePath falls back to DefaultBasePath, a nil log to logger.Nop.
func NewHandler(services *service.Service, log *logger.Logger, basePath string) *Handler {
	basePath = "/" + strings.Trim(strings.TrimSpace(basePath), "/")
	if basePath == "/" {
		basePath = DefaultBasePath
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log, basePath: basePath}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(h.log))

	router.GET("/health", h.health)

	base := router.Group(h.basePath)
	h.registerAuthRoutes(base)
	h.registerAPIRoutes(base)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.RouterGroup) {
	api := r.Group("", h.userIdMiddleware)
	{
		h.registerUserRoutes(api)
		h.registerColourRoutes(api)
		h.registerCategoryRoutes(api)
		h.registerLabelRoutes(api)
		h.registerEntryLabelRoutes(api)

		api.GET("/summary", h.getSummary)
		api.GET("/logs", h.getLogs)
		api.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	me := api.Group("/users/me")
	{
		me.GET("", h.getMe)
		me.PATCH("", h.updateMe)
		me.DELETE("", h.deleteMe)
	}
}

func (h *Handler) registerColourRoutes(api *gin.RouterGroup) {
	colours := api.Group("/colours")
	{
		colours.GET("", h.listColours)
		colours.POST("", h.createColour)
		colours.GET("/:colourId", h.getColour)
		colours.PATCH("/:colourId", h.updateColour)
		colours.DELETE("/:colourId", h.deleteColour)
	}
}

// Subcategories and entries nest under their parents so the path itself
// carries the ownership chain that the services verify.
func (h *Handler) registerCategoryRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.GET("/:categoryId", h.getCategory)
		categories.PATCH("/:categoryId", h.updateCategory)
		categories.DELETE("/:categoryId", h.deleteCategory)
	}

	subcategories := categories.Group("/:categoryId/subcategories")
	{
		subcategories.GET("", h.listSubcategories)
		subcategories.POST("", h.createSubcategory)
		subcategories.GET("/:subcategoryId", h.getSubcategory)
		subcategories.PATCH("/:subcategoryId", h.updateSubcategory)
		subcategories.DELETE("/:subcategoryId", h.deleteSubcategory)
	}

	entries := subcategories.Group("/:subcategoryId/entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.createEntry)
		entries.GET("/:entryId", h.getEntry)
		entries.PATCH("/:entryId", h.updateEntry)
		entries.DELETE("/:entryId", h.deleteEntry)
	}
}

func (h *Handler) registerLabelRoutes(api *gin.RouterGroup) {
	labels := api.Group("/labels")
	{
		labels.GET("", h.listLabels)
		labels.POST("", h.createLabel)
		labels.GET("/:labelId", h.getLabel)
		labels.PATCH("/:labelId", h.updateLabel)
		labels.DELETE("/:labelId", h.deleteLabel)
	}
}

func (h *Handler) registerEntryLabelRoutes(api *gin.RouterGroup) {
	links := api.Group("/entries/:entryId/labels")
	{
		links.GET("", h.listEntryLabels)
		links.POST("/:labelId", h.attachLabel)
		links.DELETE("/:labelId", h.detachLabel)
	}
}
