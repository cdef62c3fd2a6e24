package routes

import (
	"github.com/gin-gonic/gin"

	pickupControllers "github.com/JIexa3/StoreOfHandWork/controllers/pickup"
	productcontroller "github.com/JIexa3/StoreOfHandWork/controllers/product"
	returnControllers "github.com/JIexa3/StoreOfHandWork/controllers/returns"
	userControllers "github.com/JIexa3/StoreOfHandWork/controllers/user"
	"github.com/JIexa3/StoreOfHandWork/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, d *Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.Config.AdminAPIKey))
	{
		// User management
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.PUT("/users/:id/status", userControllers.SetUserStatus(d.DB))

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.DB))
			productAdmin.GET("", productcontroller.GetProducts(d.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.DB))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.DB))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB))
		}

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.DB))
			categoryAdmin.GET("", productcontroller.GetAllCategories(d.DB))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.DB))
		}

		// Tag management
		tagAdmin := adminGroup.Group("/tags")
		{
			tagAdmin.POST("", productcontroller.CreateTag(d.DB))
			tagAdmin.GET("", productcontroller.GetAllTags(d.DB))
			tagAdmin.DELETE("/:id", productcontroller.DeleteTag(d.DB))
		}

		// Pickup points
		pickupAdmin := adminGroup.Group("/pickup-points")
		{
			pickupAdmin.POST("", pickupControllers.CreatePickupPoint(d.DB))
			pickupAdmin.PUT("/:id", pickupControllers.UpdatePickupPoint(d.DB))
			pickupAdmin.DELETE("/:id", pickupControllers.DeletePickupPoint(d.DB))
		}

		// Return workflow
		returnsAdmin := adminGroup.Group("/returns")
		{
			returnsAdmin.GET("", returnControllers.GetAllReturns(d.DB))
			returnsAdmin.PUT("/:requestID/status", returnControllers.UpdateReturnStatusHandler(d.Returns))
		}
		policyAdmin := adminGroup.Group("/return-policies")
		{
			policyAdmin.GET("", returnControllers.ListPolicies(d.DB))
			policyAdmin.POST("", returnControllers.CreatePolicy(d.Returns))
		}
	}
}
