package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// ReturnService reverses or redirects inventory after delivery and drives a
// return request through its review lifecycle.
type ReturnService struct {
	db        *gorm.DB
	inventory *InventoryService
	mailer    Mailer
	log       *logrus.Logger
}

func NewReturnService(db *gorm.DB, inventory *InventoryService, mailer Mailer, log *logrus.Logger) *ReturnService {
	return &ReturnService{db: db, inventory: inventory, mailer: mailer, log: log}
}

// IsValidReturnTransition is the single transition table for return requests.
// Everything not listed is rejected with no state change.
func IsValidReturnTransition(current, next models.ReturnStatus) bool {
	switch current {
	case models.ReturnStatusSubmitted:
		return next == models.ReturnStatusApproved ||
			next == models.ReturnStatusRejected ||
			next == models.ReturnStatusCancelled
	case models.ReturnStatusApproved:
		return next == models.ReturnStatusItemReceived ||
			next == models.ReturnStatusCancelled
	case models.ReturnStatusItemReceived:
		return next == models.ReturnStatusRefundCompleted ||
			next == models.ReturnStatusExchangeCompleted
	default:
		return false
	}
}

// IsTerminalReturnStatus reports whether no further transition is defined.
func IsTerminalReturnStatus(s models.ReturnStatus) bool {
	switch s {
	case models.ReturnStatusRejected,
		models.ReturnStatusRefundCompleted,
		models.ReturnStatusExchangeCompleted,
		models.ReturnStatusCancelled:
		return true
	default:
		return false
	}
}

// CreateReturnInput carries everything the customer submits.
type CreateReturnInput struct {
	UserID            uint
	OrderItemID       uint
	Reason            models.ReturnReason
	Type              models.ReturnType
	ExchangeProductID *uint
	Comments          string
}

// Create validates the return window and the no-duplicate-active rule, then
// records the request. Stock is untouched until the request completes.
func (s *ReturnService) Create(input CreateReturnInput) (*models.ReturnRequest, error) {
	var orderItem models.OrderItem
	if err := s.db.Preload("Order").First(&orderItem, input.OrderItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item %d: %w", input.OrderItemID, ErrNotFound)
		}
		return nil, err
	}
	if orderItem.Order == nil || orderItem.Order.Status != models.OrderStatusDelivered {
		return nil, ErrOrderNotDelivered
	}

	if policy, err := s.ActivePolicy(); err == nil && policy != nil {
		elapsed := time.Since(orderItem.Order.OrderDate)
		if elapsed > time.Duration(policy.ReturnPeriodDays)*24*time.Hour {
			return nil, fmt.Errorf("%w: limit is %d days", ErrReturnWindowExpired, policy.ReturnPeriodDays)
		}
	}

	var existing []models.ReturnRequest
	if err := s.db.Where("order_item_id = ?", input.OrderItemID).Find(&existing).Error; err != nil {
		return nil, err
	}
	for _, req := range existing {
		if !IsTerminalReturnStatus(req.Status) {
			return nil, ErrActiveReturnExists
		}
	}

	if input.Type == models.ReturnTypeExchange {
		if input.ExchangeProductID == nil {
			return nil, ErrExchangeProductRequired
		}
		var target models.Product
		if err := s.db.First(&target, *input.ExchangeProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("exchange product %d: %w", *input.ExchangeProductID, ErrNotFound)
			}
			return nil, err
		}
		if !target.IsActive {
			return nil, ErrProductUnavailable
		}
	}

	request := models.ReturnRequest{
		OrderItemID:        input.OrderItemID,
		UserID:             input.UserID,
		RequestDate:        time.Now(),
		Status:             models.ReturnStatusSubmitted,
		Reason:             input.Reason,
		Type:               input.Type,
		ExchangeProductID:  input.ExchangeProductID,
		AdditionalComments: input.Comments,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"return_id":     request.ID,
		"order_item_id": input.OrderItemID,
		"type":          input.Type,
	}).Info("return: request submitted")
	return &request, nil
}

// UpdateStatus applies one transition. Review and completion timestamps are
// set exactly once, on entering the relevant state. Completing a refund
// restocks the original product; completing an exchange additionally
// decrements the exchange target and fails — rolling everything back — when
// the target lacks stock at that moment.
func (s *ReturnService) UpdateStatus(requestID uint, next models.ReturnStatus, adminComments string) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	err := s.db.Preload("OrderItem").Preload("OrderItem.Product").Preload("User").
		First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("return request %d: %w", requestID, ErrNotFound)
		}
		return nil, err
	}

	if !IsValidReturnTransition(request.Status, next) {
		return nil, &TransitionError{Entity: "return request", From: string(request.Status), To: string(next)}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		request.Status = next
		if adminComments != "" {
			request.AdminComments = adminComments
		}
		if request.ReviewDate == nil &&
			(next == models.ReturnStatusApproved || next == models.ReturnStatusRejected) {
			request.ReviewDate = &now
		}
		if request.CompletionDate == nil && IsTerminalReturnStatus(next) {
			request.CompletionDate = &now
		}

		switch next {
		case models.ReturnStatusRefundCompleted:
			if err := s.inventory.Restock(tx, request.OrderItem.ProductID, request.OrderItem.Quantity); err != nil {
				return err
			}
		case models.ReturnStatusExchangeCompleted:
			if request.ExchangeProductID == nil {
				return ErrExchangeProductRequired
			}
			if err := s.inventory.Restock(tx, request.OrderItem.ProductID, request.OrderItem.Quantity); err != nil {
				return err
			}
			if err := s.inventory.CommitDecrement(tx, *request.ExchangeProductID, request.OrderItem.Quantity); err != nil {
				return err
			}
		}

		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(&request)
	return &request, nil
}

// ListForUser returns a customer's requests, newest first.
func (s *ReturnService) ListForUser(userID uint) ([]models.ReturnRequest, error) {
	var requests []models.ReturnRequest
	err := s.db.Preload("OrderItem").Preload("OrderItem.Product").Preload("ExchangeProduct").
		Where("user_id = ?", userID).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

// ActivePolicy returns the currently active policy, or nil when none is set.
func (s *ReturnService) ActivePolicy() (*models.ReturnPolicy, error) {
	var policy models.ReturnPolicy
	err := s.db.Where("is_active = ?", true).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// SavePolicy stores a new policy version. Activating it deactivates every
// other version in the same transaction, keeping at most one active while the
// history stays intact.
func (s *ReturnService) SavePolicy(policy *models.ReturnPolicy) error {
	if policy.ReturnPeriodDays <= 0 {
		return fmt.Errorf("return period days: %w", ErrInvalidQuantity)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if policy.IsActive {
			if err := tx.Model(&models.ReturnPolicy{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(policy).Error
	})
}

func (s *ReturnService) notifyStatus(request *models.ReturnRequest) {
	if s.mailer == nil || request.User == nil {
		return
	}
	if !request.User.EmailNotificationsEnabled {
		return
	}
	if err := s.mailer.SendReturnStatusEmail(request); err != nil {
		s.log.WithError(err).WithField("return_id", request.ID).Warn("return: status email failed")
	}
}
