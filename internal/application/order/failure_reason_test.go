package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"库存不足", book.InsufficientStock(&book.Book{Title: "Dune", StockQuantity: 1}, 5), "insufficient_stock"},
		{"图书不存在", book.NotFound("b-1"), "not_found"},
		{"参数错误", order.ErrEmptyItems, "validation"},
		{"未登录", order.ErrUserRequired, "unauthorized"},
		{"其他错误", errors.New("connection reset"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureReason(tt.err))
		})
	}
}
