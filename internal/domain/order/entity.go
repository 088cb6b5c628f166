package order

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// Order 订单（聚合根），创建后不再修改
type Order struct {
	ID        string
	UserID    string
	Items     []*OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem 订单明细
// 不保存下单时的价格，金额始终按图书当前价格计算
type OrderItem struct {
	ID        string
	OrderID   string
	BookID    string
	Quantity  int
	Book      *book.Book // 读取时关联（含分类），可能是已软删除的图书
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line 下单请求中的一行
type Line struct {
	BookID   string
	Quantity int
}

// ValidateLines 在访问数据库之前校验下单请求
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrEmptyItems
	}
	for _, l := range lines {
		if strings.TrimSpace(l.BookID) == "" {
			return ErrMissingBookID
		}
		if l.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// NewOrder 创建空订单（工厂方法）
func NewOrder(userID string) *Order {
	now := time.Now()
	return &Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem 追加明细，保持调用顺序
func (o *Order) AddItem(bookID string, quantity int) *OrderItem {
	item := &OrderItem{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.CreatedAt,
	}
	o.Items = append(o.Items, item)
	return item
}

// TotalQuantity 总册数
func (o *Order) TotalQuantity() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// TotalAmount 按当前价格计算的订单金额，未关联图书的明细不计入
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Amount()
	}
	return total
}

// Amount quantity × 当前价格
func (it *OrderItem) Amount() int64 {
	if it.Book == nil {
		return 0
	}
	return int64(it.Quantity) * it.Book.Price
}

// IsOwnedBy 订单是否属于该用户
func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID == userID
}
