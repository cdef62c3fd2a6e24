package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// UpdateProduct updates an existing product by ID. Accepts the same multipart
// fields as CreateProduct; only the supplied ones change.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Tags").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("price"); v != "" {
			price, parseErr := strconv.ParseFloat(v, 64)
			if parseErr != nil || price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if v := c.PostForm("stock_quantity"); v != "" {
			stock, parseErr := strconv.Atoi(v)
			if parseErr != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
			product.StockQuantity = stock
		}
		if v := c.PostForm("is_active"); v != "" {
			active, parseErr := strconv.ParseBool(v)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_active"})
				return
			}
			product.IsActive = active
		}
		if v := c.PostForm("category_id"); v != "" {
			catID, parseErr := strconv.ParseUint(v, 10, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, catID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = category.ID
		}

		if raw, ok := c.GetPostForm("tag_ids"); ok {
			tags, err := parseTagIDs(db, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&product).Association("Tags").Replace(tags); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags"})
				return
			}
			product.Tags = tags
		}

		if file, err := c.FormFile("image"); err == nil {
			imagePath, saveErr := saveProductImage(c, file)
			if saveErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": saveErr.Error()})
				return
			}
			product.ImagePath = imagePath
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
