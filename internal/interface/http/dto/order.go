package dto

import (
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// PlaceOrderRequest 下单请求
// 非空和数量下限由领域层校验，这里只负责类型绑定
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemRequest 下单明细
type OrderItemRequest struct {
	BookID   string `json:"book_id" example:"6f1c2a8e-3c4b-4c55-9d6a-1a2b3c4d5e6f"`
	Quantity int    `json:"quantity" example:"2"`
}

// Lines 转换为领域的下单行
func (r PlaceOrderRequest) Lines() []order.Line {
	if len(r.Items) == 0 {
		return nil
	}
	lines := make([]order.Line, len(r.Items))
	for i, it := range r.Items {
		lines[i] = order.Line{BookID: it.BookID, Quantity: it.Quantity}
	}
	return lines
}

// StatisticsQuery 统计时间范围，YYYY-MM-DD或RFC3339
type StatisticsQuery struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// ListOrdersQuery 订单列表分页参数
type ListOrdersQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}
