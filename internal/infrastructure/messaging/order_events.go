// Package messaging 订单事件发布（RabbitMQ）
package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// Publisher 消息发布抽象，*mq.Publisher实现
type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, message any) error
	Exchange() string
}

var _ Publisher = (*mq.Publisher)(nil)

// OrderEventPublisher 经熔断器发布订单事件
// broker不可用时熔断打开，后续下单不再等待发布超时
type OrderEventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
}

// NewOrderEventPublisher timeout为单次发布超时，breakerTimeout为熔断打开时长
func NewOrderEventPublisher(publisher Publisher, timeout, breakerTimeout time.Duration) *OrderEventPublisher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	breaker := circuitbreaker.New("order-events", circuitbreaker.Settings{
		Timeout: breakerTimeout,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})
	return &OrderEventPublisher{publisher: publisher, breaker: breaker, timeout: timeout}
}

// PublishOrderPlaced 实现order.EventPublisher
func (p *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, event order.OrderPlacedEvent) error {
	// 不继承请求的取消，请求结束后发布仍可完成
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return p.publisher.Publish(ctx, order.RoutingKeyOrderPlaced, event.OrderID, event)
	})

	p.record(err)
	return err
}

func (p *OrderEventPublisher) record(err error) {
	breakerResult, publishResult := "success", "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		breakerResult, publishResult = "rejected", "rejected"
	case err != nil:
		breakerResult, publishResult = "failure", "failure"
	}

	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   p.breaker.Name(),
		"result": breakerResult,
	})
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.publisher.Exchange(),
		"routing_key": order.RoutingKeyOrderPlaced,
		"result":      publishResult,
	})
}

// BreakerState 当前熔断状态
func (p *OrderEventPublisher) BreakerState() circuitbreaker.State {
	return p.breaker.State()
}
