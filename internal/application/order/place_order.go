package order

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

const tracerName = "bookshop/order"

// PlaceOrderUseCase 下单用例
//
// 在一个事务中逐项锁定图书、检查库存并条件扣减，最后写入订单。
// 任何一项失败整个事务回滚，库存和订单要么全部生效要么全部不变。
// 事件发布在事务提交之后进行。
type PlaceOrderUseCase struct {
	txManager *rdb.TxManager
	bookRepo  book.Repository
	orderRepo order.Repository
	publisher EventPublisher
}

func NewPlaceOrderUseCase(
	txManager *rdb.TxManager,
	bookRepo book.Repository,
	orderRepo order.Repository,
	publisher EventPublisher,
) *PlaceOrderUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &PlaceOrderUseCase{
		txManager: txManager,
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*OrderView, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int("item_count", len(req.Items)),
	)

	placed, err := uc.place(ctx, req)
	metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": failureReason(err)})
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersPlacedTotal)
	metrics.AddCounter(metrics.BooksSoldTotal, float64(placed.TotalQuantity()))
	span.SetAttributes(attribute.String("order_id", placed.ID))

	uc.publish(ctx, placed)
	return ToOrderView(placed), nil
}

func (uc *PlaceOrderUseCase) place(ctx context.Context, req PlaceOrderRequest) (*order.Order, error) {
	if req.UserID == "" {
		return nil, order.ErrUserRequired
	}
	// 校验在访问数据库之前完成
	if err := order.ValidateLines(req.Items); err != nil {
		return nil, err
	}

	var placed *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o := order.NewOrder(req.UserID)

		for _, line := range req.Items {
			b, err := uc.bookRepo.LockByID(txCtx, line.BookID)
			if err != nil {
				return err
			}
			if !b.HasStock(line.Quantity) {
				return book.InsufficientStock(b, line.Quantity)
			}

			ok, err := uc.bookRepo.DecrementStock(txCtx, b.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// 加锁后仍失败说明库存已被并发扣走
				return book.InsufficientStock(b, line.Quantity)
			}

			o.AddItem(b.ID, line.Quantity)
		}

		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		// 事务内重新读取，带出明细的图书和分类
		reloaded, err := uc.orderRepo.FindByID(txCtx, o.ID)
		if err != nil {
			return err
		}
		placed = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (uc *PlaceOrderUseCase) publish(ctx context.Context, o *order.Order) {
	if err := uc.publisher.PublishOrderPlaced(ctx, NewOrderPlacedEvent(o)); err != nil {
		logger.FromContext(ctx).Warn("publish order event failed",
			slog.String("order_id", o.ID),
			slog.Any("error", err),
		)
	}
}

// failureReason 失败原因标签，取值有限
func failureReason(err error) string {
	switch {
	case apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock):
		return "insufficient_stock"
	case book.IsNotFound(err):
		return "not_found"
	case apperrors.HasCode(err, apperrors.ErrCodeValidation):
		return "validation"
	case apperrors.HasCode(err, apperrors.ErrCodeUnauthorized):
		return "unauthorized"
	}
	return "internal"
}
