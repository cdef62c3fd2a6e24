package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/JIexa3/StoreOfHandWork/controllers/order"
	"github.com/JIexa3/StoreOfHandWork/middleware"
)

func SetupOrderRoutes(r *gin.Engine, d *Deps) {
	// Customer-facing order endpoints
	userOrders := r.Group("/user/orders")
	userOrders.Use(middleware.ValidateToken(d.Config.JWTSecret))
	{
		userOrders.POST("/checkout", orderControllers.CheckoutHandler(d.Orders))
		userOrders.GET("/", orderControllers.GetUserOrdersHandler(d.DB))
		userOrders.GET("/:orderID", orderControllers.GetUserOrderHandler(d.DB))
		userOrders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(d.DB, d.Orders))
	}

	// Back-office order endpoints
	adminOrders := r.Group("/admin/orders")
	adminOrders.Use(middleware.ValidateAPIKey(d.Config.AdminAPIKey))
	{
		adminOrders.GET("", orderControllers.GetAllOrdersHandler(d.DB))
		adminOrders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.Orders))
		adminOrders.PUT("/items/:itemID/collected", orderControllers.SetItemCollectedHandler(d.Orders))
		adminOrders.POST("/:orderID/collection", orderControllers.SaveCollectionHandler(d.Orders))
		adminOrders.GET("/export-excel", orderControllers.ExportOrdersToExcel(d.DB))
	}

	// Live feed for the back-office dashboard
	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

	// Reports
	reports := r.Group("/admin/reports")
	reports.Use(middleware.ValidateAPIKey(d.Config.AdminAPIKey))
	{
		reports.GET("/sales", orderControllers.SalesStatisticsHandler(d.DB))
	}
}
