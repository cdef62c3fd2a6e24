package routes

import (
	"github.com/gin-gonic/gin"

	pickupControllers "github.com/JIexa3/StoreOfHandWork/controllers/pickup"
	productcontroller "github.com/JIexa3/StoreOfHandWork/controllers/product"
	returnControllers "github.com/JIexa3/StoreOfHandWork/controllers/returns"
	userControllers "github.com/JIexa3/StoreOfHandWork/controllers/user"
)

// SetupAuthRoutes registers the endpoints available without a token: account
// management plus the public storefront catalog.
func SetupAuthRoutes(r *gin.Engine, d *Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", userControllers.Register(d.DB, d.Mailer, d.Log))
		authGroup.POST("/verify-email", userControllers.VerifyEmail(d.DB))
		authGroup.POST("/login", userControllers.Login(d.DB, d.Config.JWTSecret))
	}

	// Storefront browsing needs no account.
	r.GET("/products", productcontroller.GetProducts(d.DB))
	r.GET("/products/:id", productcontroller.GetProductByID(d.DB, d.Inventory))
	r.GET("/products/:id/reviews", productcontroller.GetProductReviews(d.DB))
	r.GET("/categories", productcontroller.GetAllCategories(d.DB))
	r.GET("/tags", productcontroller.GetAllTags(d.DB))
	r.GET("/pickup-points", pickupControllers.GetPickupPoints(d.DB))
	r.GET("/return-policy", returnControllers.GetActivePolicy(d.Returns))
}
