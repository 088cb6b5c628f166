package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// RoutingKeyOrderPlaced 下单成功事件
const RoutingKeyOrderPlaced = "order.placed"

// OrderPlacedEvent 下单成功后发布的事件
type OrderPlacedEvent struct {
	OrderID       string           `json:"order_id"`
	UserID        string           `json:"user_id"`
	Items         []OrderEventItem `json:"items"`
	TotalQuantity int              `json:"total_quantity"`
	TotalAmount   int64            `json:"total_amount"`
	PlacedAt      time.Time        `json:"placed_at"`
}

// OrderEventItem 事件中的明细
type OrderEventItem struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// NewOrderPlacedEvent 从订单构造事件
func NewOrderPlacedEvent(o *order.Order) OrderPlacedEvent {
	e := OrderPlacedEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Items:         make([]OrderEventItem, len(o.Items)),
		TotalQuantity: o.TotalQuantity(),
		TotalAmount:   o.TotalAmount(),
		PlacedAt:      o.CreatedAt,
	}
	for i, it := range o.Items {
		e.Items[i] = OrderEventItem{BookID: it.BookID, Quantity: it.Quantity}
	}
	return e
}

// EventPublisher 订单事件发布
// 在事务提交后调用，失败只记录日志，不影响下单结果
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

// NoopPublisher 未启用消息队列时使用
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, OrderPlacedEvent) error {
	return nil
}
