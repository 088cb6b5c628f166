package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 订单头和明细分两条INSERT，需要在事务中调用
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := fromOrderEntity(o)
	db := getDB(ctx, r.db)

	if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}
	if len(model.Items) > 0 {
		if err := db.Omit(clause.Associations).Create(&model.Items).Error; err != nil {
			return apperrors.Wrap(err, "创建订单明细失败")
		}
	}

	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	err := withItems(getDB(ctx, r.db)).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, page shared.PageRequest) ([]*order.Order, int64, error) {
	q := getDB(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := withItems(q).
		Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), total, nil
}

// FindInRange 时间统一按UTC比较，sqlite中时间以文本存储
func (r *orderRepository) FindInRange(ctx context.Context, dr order.DateRange) ([]*order.Order, error) {
	q := getDB(ctx, r.db).Model(&OrderModel{})
	if dr.From != nil {
		q = q.Where("created_at >= ?", dr.From.UTC())
	}
	if dr.To != nil {
		if dr.ToExclusive {
			q = q.Where("created_at < ?", dr.To.UTC())
		} else {
			q = q.Where("created_at <= ?", dr.To.UTC())
		}
	}

	var models []OrderModel
	if err := withItems(q).Order("created_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntities(models), nil
}

// withItems 关联明细、图书和分类
// 图书和分类不过滤状态，历史订单需要展示已删除的图书
func withItems(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Book").
		Preload("Items.Book.Genre")
}

func fromOrderEntity(o *order.Order) *OrderModel {
	model := &OrderModel{
		ID:        o.ID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt.UTC(),
		UpdatedAt: o.UpdatedAt.UTC(),
		Items:     make([]OrderItemModel, len(o.Items)),
	}
	for i, it := range o.Items {
		model.Items[i] = OrderItemModel{
			ID:        it.ID,
			OrderID:   o.ID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			Position:  i,
			CreatedAt: it.CreatedAt.UTC(),
			UpdatedAt: it.UpdatedAt.UTC(),
		}
	}
	return model
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}

func toOrderEntity(m *OrderModel) *order.Order {
	o := &order.Order{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Items:     make([]*order.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		im := &m.Items[i]
		it := &order.OrderItem{
			ID:        im.ID,
			OrderID:   im.OrderID,
			BookID:    im.BookID,
			Quantity:  im.Quantity,
			CreatedAt: im.CreatedAt,
			UpdatedAt: im.UpdatedAt,
		}
		if im.Book != nil {
			it.Book = toBookEntity(im.Book)
		}
		o.Items[i] = it
	}
	return o
}
