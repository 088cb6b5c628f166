package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	"github.com/xiebiao/bookshop/pkg/response"
)

// ListOrdersUseCase 当前用户的订单，按创建时间倒序
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID string, page, limit int) (*OrderPage, error) {
	pr, err := shared.NewPageRequest(page, limit)
	if err != nil {
		return nil, err
	}

	orders, total, err := uc.orderRepo.ListByUser(ctx, userID, pr)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = ToOrderView(o)
	}
	return &OrderPage{
		Orders:     views,
		Pagination: response.NewPagination(total, pr.Page, pr.Limit),
	}, nil
}

// GetOrderUseCase 订单详情
// 其他用户的订单同样返回NotFound，不暴露订单是否存在
type GetOrderUseCase struct {
	orderRepo order.Repository
}

func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, userID, orderID string) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.NotFound(orderID)
	}
	return ToOrderView(o), nil
}
