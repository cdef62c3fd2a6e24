package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/config"
	"github.com/JIexa3/StoreOfHandWork/services"
)

// Deps carries everything the handlers need. Built once in main.
type Deps struct {
	DB        *gorm.DB
	Config    config.Config
	Log       *logrus.Logger
	Inventory *services.InventoryService
	Cart      *services.CartService
	Orders    *services.OrderService
	Returns   *services.ReturnService
	Mailer    services.Mailer
}

// SetupRoutes is the single entry point that wires up the public, user, and
// admin route groups.
func SetupRoutes(r *gin.Engine, d *Deps) {
	// Public routes (no middleware)
	SetupAuthRoutes(r, d)

	// User routes (JWT-protected)
	SetupUserRoutes(r, d)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, d)

	// Order routes (mixed user/admin)
	SetupOrderRoutes(r, d)
}
