package returnControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
	"github.com/JIexa3/StoreOfHandWork/services"
)

type ReturnPolicyInput struct {
	Title              string `json:"title" binding:"required"`
	ReturnPeriodDays   int    `json:"return_period_days" binding:"required,min=1"`
	GeneralConditions  string `json:"general_conditions"`
	ExcludedCategories string `json:"excluded_categories"`
	RefundPolicy       string `json:"refund_policy"`
	ExchangePolicy     string `json:"exchange_policy"`
	IsActive           bool   `json:"is_active"`
	UpdatedBy          string `json:"updated_by"`
}

// GET /return-policy — the policy customers see before submitting a request.
func GetActivePolicy(returns *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		policy, err := returns.ActivePolicy()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch return policy"})
			return
		}
		if policy == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active return policy"})
			return
		}
		c.JSON(http.StatusOK, policy)
	}
}

// GET /admin/return-policies — full version history.
func ListPolicies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var policies []models.ReturnPolicy
		if err := db.Order("last_updated desc").Find(&policies).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch return policies"})
			return
		}
		c.JSON(http.StatusOK, policies)
	}
}

// POST /admin/return-policies
func CreatePolicy(returns *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ReturnPolicyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		policy := models.ReturnPolicy{
			Title:              input.Title,
			ReturnPeriodDays:   input.ReturnPeriodDays,
			GeneralConditions:  input.GeneralConditions,
			ExcludedCategories: input.ExcludedCategories,
			RefundPolicy:       input.RefundPolicy,
			ExchangePolicy:     input.ExchangePolicy,
			IsActive:           input.IsActive,
			UpdatedBy:          input.UpdatedBy,
		}
		if err := returns.SavePolicy(&policy); err != nil {
			if errors.Is(err, services.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save return policy"})
			return
		}
		c.JSON(http.StatusCreated, policy)
	}
}
