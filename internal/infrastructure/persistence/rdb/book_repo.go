package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var bookSortColumns = map[book.SortField]string{
	book.SortByTitle:           "title",
	book.SortByWriter:          "writer",
	book.SortByPublisher:       "publisher",
	book.SortByPublicationYear: "publication_year",
	book.SortByPrice:           "price",
	book.SortByStockQuantity:   "stock_quantity",
	book.SortByCreatedAt:       "created_at",
	book.SortByUpdatedAt:       "updated_at",
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := fromBookEntity(b)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Preload("Genre").
		Where("id = ? AND status = ?", id, activeStatus()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	var count int64
	q := getDB(ctx, r.db).Model(&BookModel{}).
		Where("status = ? AND LOWER(title) = LOWER(?)", activeStatus(), title)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return count > 0, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book, patch book.Patch) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND status = ?", b.ID, activeStatus()).
		Updates(patchColumns(b, patch))
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return book.NotFound(b.ID)
	}
	return nil
}

func (r *bookRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND status = ?", id, activeStatus()).
		Updates(map[string]any{
			"status":     string(shared.StatusDeleted),
			"deleted_at": at,
			"updated_at": at,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.NotFound(id)
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, query book.ListQuery) ([]*book.Book, int64, error) {
	q := getDB(ctx, r.db).Model(&BookModel{}).Where("status = ?", activeStatus())

	if query.Title != "" {
		q = whereContains(q, "title", query.Title)
	}
	if query.Writer != "" {
		q = whereContains(q, "writer", query.Writer)
	}
	if query.Publisher != "" {
		q = whereContains(q, "publisher", query.Publisher)
	}
	if query.GenreID != "" {
		q = q.Where("genre_id = ?", query.GenreID)
	}
	if query.MinPrice != nil {
		q = q.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		q = q.Where("price <= ?", *query.MaxPrice)
	}
	if query.MinYear != nil {
		q = q.Where("publication_year >= ?", *query.MinYear)
	}
	if query.MaxYear != nil {
		q = q.Where("publication_year <= ?", *query.MaxYear)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	column, ok := bookSortColumns[query.Sort]
	if !ok {
		column = "created_at"
	}

	var models []BookModel
	err := orderBy(q, column, query.Order).
		Preload("Genre").
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// LockByID 必须在TxManager.Transaction中调用，锁在事务结束时释放
func (r *bookRepository) LockByID(ctx context.Context, id string) (*book.Book, error) {
	db := getDB(ctx, r.db)
	q := db.Where("id = ? AND status = ?", id, activeStatus())
	if supportsRowLock(db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model BookModel
	if err := q.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// DecrementStock 条件更新：UPDATE ... WHERE stock_quantity >= ?
// 即使没有行锁也不会把库存扣成负数
func (r *bookRepository) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND status = ? AND stock_quantity >= ?", id, activeStatus(), quantity).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "扣减库存失败")
	}
	return result.RowsAffected == 1, nil
}

// patchColumns 取patch中出现的字段，值以已校验的实体为准
func patchColumns(b *book.Book, patch book.Patch) map[string]any {
	cols := map[string]any{"updated_at": b.UpdatedAt}
	if patch.Title != nil {
		cols["title"] = b.Title
	}
	if patch.Writer != nil {
		cols["writer"] = b.Writer
	}
	if patch.Publisher != nil {
		cols["publisher"] = b.Publisher
	}
	if patch.PublicationYear != nil {
		cols["publication_year"] = b.PublicationYear
	}
	if patch.Description != nil {
		cols["description"] = b.Description
	}
	if patch.Price != nil {
		cols["price"] = b.Price
	}
	if patch.StockQuantity != nil {
		cols["stock_quantity"] = b.StockQuantity
	}
	if patch.GenreID != nil {
		cols["genre_id"] = b.GenreID
	}
	return cols
}

func fromBookEntity(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Writer:          b.Writer,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		Price:           b.Price,
		StockQuantity:   b.StockQuantity,
		GenreID:         b.GenreID,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		DeletedAt:       copyTime(b.DeletedAt),
	}
}

func toBookEntity(m *BookModel) *book.Book {
	b := &book.Book{
		ID:              m.ID,
		Title:           m.Title,
		Writer:          m.Writer,
		Publisher:       m.Publisher,
		PublicationYear: m.PublicationYear,
		Description:     m.Description,
		Price:           m.Price,
		StockQuantity:   m.StockQuantity,
		GenreID:         m.GenreID,
		Status:          toStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       copyTime(m.DeletedAt),
	}
	if m.Genre != nil {
		b.Genre = toGenreEntity(m.Genre)
	}
	return b
}
