package productcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/middleware"
	"github.com/JIexa3/StoreOfHandWork/models"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// GET /products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Preload("User").
			Where("product_id = ?", c.Param("id")).
			Order("created_date desc").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /user/products/:id/reviews — one review per user per product; posting
// again overwrites. Buyers of the product get a verified mark.
func UpsertProductReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var purchases int64
		db.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("order_items.product_id = ? AND orders.user_id = ? AND orders.status = ?",
				product.ID, userID, models.OrderStatusDelivered).
			Count(&purchases)

		var review models.Review
		err := db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&review).Error
		if err == nil {
			now := time.Now()
			review.Rating = input.Rating
			review.Comment = input.Comment
			review.UpdatedDate = &now
			review.IsVerified = purchases > 0
			if err := db.Save(&review).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
				return
			}
			c.JSON(http.StatusOK, review)
			return
		}

		review = models.Review{
			UserID:     userID,
			ProductID:  product.ID,
			Rating:     input.Rating,
			Comment:    input.Comment,
			IsVerified: purchases > 0,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
