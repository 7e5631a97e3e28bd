package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/assistant"
	assistantcontroller "github.com/killjoy47/MniseCosmetics/controllers/assistant"
	authcontroller "github.com/killjoy47/MniseCosmetics/controllers/auth"
	productcontroller "github.com/killjoy47/MniseCosmetics/controllers/product"
	salecontroller "github.com/killjoy47/MniseCosmetics/controllers/sale"
	wscontroller "github.com/killjoy47/MniseCosmetics/controllers/ws"
	"github.com/killjoy47/MniseCosmetics/middleware"
	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/killjoy47/MniseCosmetics/realtime"
	"github.com/killjoy47/MniseCosmetics/store"
)

// SetupRoutes is the single entry-point that wires up the API surface.
func SetupRoutes(r *gin.Engine, st *store.Store, hub *realtime.Hub, engine *assistant.Engine) {
	api := r.Group("/api")

	// Public: login, password reset (self-gated by the master key) and the
	// websocket join, which only exposes the public catalog snapshot.
	api.POST("/login", authcontroller.Login(st))
	api.POST("/reset-password", authcontroller.ResetPassword(st))
	api.GET("/ws", wscontroller.Handler(st, hub))

	// Staff: both roles. Finer business rules (who edits products) live in
	// the terminals' UI; the gate only enforces role membership.
	staff := api.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleSeller))
	{
		staff.GET("/products", productcontroller.GetProducts(st))
		staff.POST("/products", productcontroller.UpsertProduct(st))
		staff.GET("/categories", productcontroller.GetCategories(st))
		staff.POST("/categories", productcontroller.AddCategories(st))
		staff.POST("/sell", salecontroller.Sell(st))
		staff.GET("/sales", salecontroller.ListSales(st))
		staff.POST("/assistant", assistantcontroller.Ask(engine))
	}

	adminOnly := api.Group("", middleware.RequireRole(models.RoleAdmin))
	{
		adminOnly.GET("/products/export-excel", productcontroller.ExportInventoryToExcel(st))
	}
}
