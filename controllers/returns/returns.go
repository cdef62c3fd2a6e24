package returnControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/middleware"
	"github.com/JIexa3/StoreOfHandWork/models"
	"github.com/JIexa3/StoreOfHandWork/services"
)

type CreateReturnRequestInput struct {
	OrderItemID       uint   `json:"order_item_id" binding:"required"`
	Reason            string `json:"reason" binding:"required"`
	Type              string `json:"type" binding:"required,oneof=refund exchange"`
	ExchangeProductID *uint  `json:"exchange_product_id"`
	Comments          string `json:"comments" binding:"max=1000"`
}

type UpdateReturnStatusInput struct {
	Status        string `json:"status" binding:"required"`
	AdminComments string `json:"admin_comments" binding:"max=1000"`
}

func mapReturnReason(reason string) (models.ReturnReason, error) {
	switch strings.ToLower(reason) {
	case string(models.ReturnReasonDefective):
		return models.ReturnReasonDefective, nil
	case string(models.ReturnReasonWrongSize):
		return models.ReturnReasonWrongSize, nil
	case string(models.ReturnReasonWrongItem):
		return models.ReturnReasonWrongItem, nil
	case string(models.ReturnReasonNotAsDescribed):
		return models.ReturnReasonNotAsDescribed, nil
	case string(models.ReturnReasonFoundCheaper):
		return models.ReturnReasonFoundCheaper, nil
	case string(models.ReturnReasonChangedMind):
		return models.ReturnReasonChangedMind, nil
	case string(models.ReturnReasonOther):
		return models.ReturnReasonOther, nil
	default:
		return "", errors.New("invalid return reason")
	}
}

func mapReturnStatus(status string) (models.ReturnStatus, error) {
	switch strings.ToLower(status) {
	case string(models.ReturnStatusSubmitted):
		return models.ReturnStatusSubmitted, nil
	case string(models.ReturnStatusApproved):
		return models.ReturnStatusApproved, nil
	case string(models.ReturnStatusRejected):
		return models.ReturnStatusRejected, nil
	case string(models.ReturnStatusItemReceived):
		return models.ReturnStatusItemReceived, nil
	case string(models.ReturnStatusRefundCompleted):
		return models.ReturnStatusRefundCompleted, nil
	case string(models.ReturnStatusExchangeCompleted):
		return models.ReturnStatusExchangeCompleted, nil
	case string(models.ReturnStatusCancelled):
		return models.ReturnStatusCancelled, nil
	default:
		return "", errors.New("invalid return status")
	}
}

// POST /user/returns
func CreateReturnRequest(returns *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateReturnRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reason, err := mapReturnReason(input.Reason)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		returnType := models.ReturnTypeRefund
		if input.Type == string(models.ReturnTypeExchange) {
			returnType = models.ReturnTypeExchange
		}

		request, err := returns.Create(services.CreateReturnInput{
			UserID:            middleware.UserID(c),
			OrderItemID:       input.OrderItemID,
			Reason:            reason,
			Type:              returnType,
			ExchangeProductID: input.ExchangeProductID,
			Comments:          input.Comments,
		})
		if err != nil {
			respondReturnError(c, err)
			return
		}
		c.JSON(http.StatusCreated, request)
	}
}

// GET /user/returns
func GetUserReturns(returns *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requests, err := returns.ListForUser(middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch return requests"})
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// POST /user/returns/:requestID/cancel — customers may cancel while the
// request is still under review or waiting for the item.
func CancelReturnRequest(db *gorm.DB, returns *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.ParseUint(c.Param("requestID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return request ID"})
			return
		}

		var request models.ReturnRequest
		if err := db.Where("id = ? AND user_id = ?", requestID, middleware.UserID(c)).
			First(&request).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Return request not found"})
			return
		}

		updated, err := returns.UpdateStatus(uint(requestID), models.ReturnStatusCancelled, "")
		if err != nil {
			respondReturnError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// GET /admin/returns — optional ?status= filter.
func GetAllReturns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("OrderItem").Preload("OrderItem.Product").
			Preload("User").Preload("ExchangeProduct").
			Order("request_date desc")

		if statusStr := c.Query("status"); statusStr != "" {
			status, err := mapReturnStatus(statusStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}

		var requests []models.ReturnRequest
		if err := query.Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch return requests"})
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// PUT /admin/returns/:requestID/status
func UpdateReturnStatusHandler(returns *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.ParseUint(c.Param("requestID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return request ID"})
			return
		}

		var input UpdateReturnStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := mapReturnStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		request, err := returns.UpdateStatus(uint(requestID), status, input.AdminComments)
		if err != nil {
			respondReturnError(c, err)
			return
		}
		c.JSON(http.StatusOK, request)
	}
}

func respondReturnError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	var transErr *services.TransitionError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.As(err, &transErr):
		c.JSON(http.StatusConflict, gin.H{"error": transErr.Error()})
	case errors.Is(err, services.ErrActiveReturnExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotDelivered),
		errors.Is(err, services.ErrReturnWindowExpired),
		errors.Is(err, services.ErrExchangeProductRequired),
		errors.Is(err, services.ErrProductUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
