package book

import (
	"context"
	"time"
)

// Repository 图书仓储接口
// 除LockByID外的读方法都只返回active记录并关联分类
type Repository interface {
	Create(ctx context.Context, book *Book) error

	// FindByID 不存在或已删除时返回NotFound(id)
	FindByID(ctx context.Context, id string) (*Book, error)

	// ExistsByTitle 在active记录中检查书名（忽略大小写），excludeID用于更新时排除自身
	ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error)

	// Update 只写入patch中出现的字段，未出现的列（尤其是库存）保持数据库中的值
	Update(ctx context.Context, book *Book, patch Patch) error

	// SoftDelete 把状态置为deleted；记录不存在时返回NotFound(id)
	SoftDelete(ctx context.Context, id string, at time.Time) error

	List(ctx context.Context, query ListQuery) ([]*Book, int64, error)

	// LockByID 在事务中对active记录加行锁（SELECT ... FOR UPDATE）
	LockByID(ctx context.Context, id string) (*Book, error)

	// DecrementStock 条件扣减：stock_quantity >= quantity 时才扣减
	// 返回false表示条件不满足（并发下库存已被扣走），库存不会变为负数
	DecrementStock(ctx context.Context, id string, quantity int) (bool, error)
}
