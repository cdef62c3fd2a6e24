package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/middleware"
	"github.com/JIexa3/StoreOfHandWork/models"
)

// GET /user/wishlist
func GetWishList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.WishListItem
		if err := db.Preload("Product").
			Where("user_id = ?", middleware.UserID(c)).
			Order("date_added desc").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wish list"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /user/wishlist
func AddWishListItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID uint `json:"product_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		item := models.WishListItem{UserID: middleware.UserID(c), ProductID: input.ProductID}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product is already in the wish list"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wish list"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /user/wishlist/:product_id
func RemoveWishListItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("user_id = ? AND product_id = ?", middleware.UserID(c), c.Param("product_id")).
			Delete(&models.WishListItem{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wish list item"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wish list item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wish list item removed"})
	}
}
