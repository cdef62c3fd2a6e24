package models

import "time"

type ReturnStatus string

const (
	ReturnStatusSubmitted         ReturnStatus = "submitted"
	ReturnStatusApproved          ReturnStatus = "approved"
	ReturnStatusRejected          ReturnStatus = "rejected"
	ReturnStatusItemReceived      ReturnStatus = "item_received"
	ReturnStatusRefundCompleted   ReturnStatus = "refund_completed"
	ReturnStatusExchangeCompleted ReturnStatus = "exchange_completed"
	ReturnStatusCancelled         ReturnStatus = "cancelled"
)

type ReturnReason string

const (
	ReturnReasonDefective      ReturnReason = "defective"
	ReturnReasonWrongSize      ReturnReason = "wrong_size"
	ReturnReasonWrongItem      ReturnReason = "wrong_item"
	ReturnReasonNotAsDescribed ReturnReason = "not_as_described"
	ReturnReasonFoundCheaper   ReturnReason = "found_cheaper"
	ReturnReasonChangedMind    ReturnReason = "changed_mind"
	ReturnReasonOther          ReturnReason = "other"
)

type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "refund"
	ReturnTypeExchange ReturnType = "exchange"
)

func ReturnStatusDisplay(s ReturnStatus) string {
	switch s {
	case ReturnStatusSubmitted:
		return "Заявка отправлена"
	case ReturnStatusApproved:
		return "Одобрено"
	case ReturnStatusRejected:
		return "Отклонено"
	case ReturnStatusItemReceived:
		return "Товар получен"
	case ReturnStatusRefundCompleted:
		return "Возврат завершен"
	case ReturnStatusExchangeCompleted:
		return "Обмен завершен"
	case ReturnStatusCancelled:
		return "Отменено"
	default:
		return string(s)
	}
}

func ReturnReasonDisplay(r ReturnReason) string {
	switch r {
	case ReturnReasonDefective:
		return "Брак/дефект товара"
	case ReturnReasonWrongSize:
		return "Не подошел размер"
	case ReturnReasonWrongItem:
		return "Получен не тот товар"
	case ReturnReasonNotAsDescribed:
		return "Не соответствует описанию"
	case ReturnReasonFoundCheaper:
		return "Нашли дешевле"
	case ReturnReasonChangedMind:
		return "Передумал"
	case ReturnReasonOther:
		return "Другое"
	default:
		return string(r)
	}
}

// ReturnRequest is an audit record: created by the customer, mutated only by
// the review workflow, never deleted.
type ReturnRequest struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderItemID uint         `gorm:"not null;index" json:"order_item_id"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	RequestDate time.Time    `gorm:"not null" json:"request_date"`
	Status      ReturnStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	Reason      ReturnReason `gorm:"type:varchar(20);not null" json:"reason"`
	Type        ReturnType   `gorm:"type:varchar(10);not null" json:"type"`

	ExchangeProductID *uint `json:"exchange_product_id"`

	AdditionalComments string     `gorm:"size:1000" json:"additional_comments"`
	AdminComments      string     `gorm:"size:1000" json:"admin_comments"`
	ReviewDate         *time.Time `json:"review_date"`
	CompletionDate     *time.Time `json:"completion_date"`

	OrderItem       *OrderItem `gorm:"foreignKey:OrderItemID" json:"order_item,omitempty"`
	User            *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ExchangeProduct *Product   `gorm:"foreignKey:ExchangeProductID" json:"exchange_product,omitempty"`
}
