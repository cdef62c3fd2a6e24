package pickupControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

type PickupPointInput struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Latitude     float64 `json:"latitude" binding:"required"`
	Longitude    float64 `json:"longitude" binding:"required"`
	WorkingHours string  `json:"working_hours"`
	Phone        string  `json:"phone"`
}

// GET /pickup-points
func GetPickupPoints(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var points []models.PickupPoint
		if err := db.Order("name").Find(&points).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pickup points"})
			return
		}
		c.JSON(http.StatusOK, points)
	}
}

// POST /admin/pickup-points
func CreatePickupPoint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PickupPointInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		point := models.PickupPoint{
			Name:         input.Name,
			Address:      input.Address,
			Latitude:     input.Latitude,
			Longitude:    input.Longitude,
			WorkingHours: input.WorkingHours,
			Phone:        input.Phone,
		}
		if err := db.Create(&point).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pickup point"})
			return
		}
		c.JSON(http.StatusCreated, point)
	}
}

// PUT /admin/pickup-points/:id
func UpdatePickupPoint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var point models.PickupPoint
		if err := db.First(&point, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pickup point not found"})
			return
		}

		var input PickupPointInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		point.Name = input.Name
		point.Address = input.Address
		point.Latitude = input.Latitude
		point.Longitude = input.Longitude
		point.WorkingHours = input.WorkingHours
		point.Phone = input.Phone
		if err := db.Save(&point).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pickup point"})
			return
		}
		c.JSON(http.StatusOK, point)
	}
}

// DELETE /admin/pickup-points/:id — refuses while orders still reference it.
func DeletePickupPoint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var point models.PickupPoint
		if err := db.First(&point, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pickup point not found"})
			return
		}

		var orderRefs int64
		if err := db.Model(&models.Order{}).
			Where("pickup_point_id = ?", point.ID).
			Count(&orderRefs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check orders"})
			return
		}
		if orderRefs > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Pickup point is referenced by orders"})
			return
		}

		if err := db.Delete(&point).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pickup point"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Pickup point deleted"})
	}
}
