package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// DeleteProduct removes a product from the catalog. Products referenced by
// order history are deactivated instead of deleted so old orders keep
// resolving.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.Preload("Tags").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var orderRefs int64
		if err := db.Model(&models.OrderItem{}).
			Where("product_id = ?", product.ID).
			Count(&orderRefs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check order references"})
			return
		}
		if orderRefs > 0 {
			if err := db.Model(&product).Update("is_active", false).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Product is referenced by orders and was deactivated"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.WishListItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
