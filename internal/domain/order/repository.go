package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// Repository 订单仓储接口
// 读方法都会关联 Items.Book.Genre，关联的图书不过滤状态（历史订单要能看到已下架图书）
type Repository interface {
	// Create 连同明细一起写入
	Create(ctx context.Context, order *Order) error

	// FindByID 不存在时返回NotFound(id)
	FindByID(ctx context.Context, id string) (*Order, error)

	// ListByUser 按创建时间倒序
	ListByUser(ctx context.Context, userID string, page shared.PageRequest) ([]*Order, int64, error)

	// FindInRange 统计用，按创建时间正序
	FindInRange(ctx context.Context, r DateRange) ([]*Order, error)
}
