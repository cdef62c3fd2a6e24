package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JIexa3/StoreOfHandWork/services"
)

type SetCollectedRequest struct {
	IsCollected *bool `json:"is_collected" binding:"required"`
}

// PUT /admin/orders/items/:itemID/collected — warehouse packing checkbox.
func SetItemCollectedHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order item ID"})
			return
		}

		var req SetCollectedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := orders.SetItemCollected(uint(itemID), *req.IsCollected); err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order item updated"})
	}
}

// POST /admin/orders/:orderID/collection — commits stock and moves the order
// to Processing once every item is packed.
func SaveCollectionHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		order, err := orders.SaveCollection(uint(orderID))
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
