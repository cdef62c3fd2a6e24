package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/JIexa3/StoreOfHandWork/controllers/cart"
	productcontroller "github.com/JIexa3/StoreOfHandWork/controllers/product"
	returnControllers "github.com/JIexa3/StoreOfHandWork/controllers/returns"
	userControllers "github.com/JIexa3/StoreOfHandWork/controllers/user"
	"github.com/JIexa3/StoreOfHandWork/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d *Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.Config.JWTSecret))
	{
		// Profile
		userGroup.GET("/", userControllers.GetUser(d.DB))
		userGroup.PUT("/", userControllers.UpdateUser(d.DB))

		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(d.Cart))
			cartGroup.POST("/", cartControllers.AddCartItem(d.Cart))
			cartGroup.PUT("/:item_id", cartControllers.UpdateCartItem(d.Cart))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(d.Cart))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(d.Cart))
		}

		// Wish list
		wishGroup := userGroup.Group("/wishlist")
		{
			wishGroup.GET("/", cartControllers.GetWishList(d.DB))
			wishGroup.POST("/", cartControllers.AddWishListItem(d.DB))
			wishGroup.DELETE("/:product_id", cartControllers.RemoveWishListItem(d.DB))
		}

		// Reviews
		userGroup.POST("/products/:id/reviews", productcontroller.UpsertProductReview(d.DB))

		// Returns
		returnsGroup := userGroup.Group("/returns")
		{
			returnsGroup.GET("/", returnControllers.GetUserReturns(d.Returns))
			returnsGroup.POST("/", returnControllers.CreateReturnRequest(d.Returns))
			returnsGroup.POST("/:requestID/cancel", returnControllers.CancelReturnRequest(d.DB, d.Returns))
		}
	}
}
