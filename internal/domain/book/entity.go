package book

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// Book 图书实体
// Price 以最小货币单位存储（分）
// Genre 为读取时关联出的分类，写入时只使用GenreID
type Book struct {
	ID              string
	Title           string
	Writer          string
	Publisher       string
	PublicationYear int
	Description     string
	Price           int64
	StockQuantity   int
	GenreID         string
	Genre           *genre.Genre
	Status          shared.RecordStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Draft 新建图书所需字段
type Draft struct {
	Title           string
	Writer          string
	Publisher       string
	PublicationYear int
	Description     string
	Price           int64
	StockQuantity   int
	GenreID         string
}

// Patch 部分更新，nil字段保持不变
type Patch struct {
	Title           *string
	Writer          *string
	Publisher       *string
	PublicationYear *int
	Description     *string
	Price           *int64
	StockQuantity   *int
	GenreID         *string
}

// Empty 没有任何需要修改的字段
func (p Patch) Empty() bool {
	return p.Title == nil && p.Writer == nil && p.Publisher == nil &&
		p.PublicationYear == nil && p.Description == nil && p.Price == nil &&
		p.StockQuantity == nil && p.GenreID == nil
}

// NewBook 创建图书（工厂方法）
func NewBook(d Draft) (*Book, error) {
	now := time.Now()
	b := &Book{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(d.Title),
		Writer:          strings.TrimSpace(d.Writer),
		Publisher:       strings.TrimSpace(d.Publisher),
		PublicationYear: d.PublicationYear,
		Description:     strings.TrimSpace(d.Description),
		Price:           d.Price,
		StockQuantity:   d.StockQuantity,
		GenreID:         strings.TrimSpace(d.GenreID),
		Status:          shared.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply 应用部分更新，校验失败时实体保持原样
func (b *Book) Apply(p Patch) error {
	next := *b
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Writer != nil {
		next.Writer = strings.TrimSpace(*p.Writer)
	}
	if p.Publisher != nil {
		next.Publisher = strings.TrimSpace(*p.Publisher)
	}
	if p.PublicationYear != nil {
		next.PublicationYear = *p.PublicationYear
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.StockQuantity != nil {
		next.StockQuantity = *p.StockQuantity
	}
	if p.GenreID != nil && strings.TrimSpace(*p.GenreID) != b.GenreID {
		next.GenreID = strings.TrimSpace(*p.GenreID)
		next.Genre = nil
	}
	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now()
	*b = next
	return nil
}

// Validate 实体不变量
func (b *Book) Validate() error {
	switch {
	case b.Title == "":
		return ErrTitleRequired
	case b.Writer == "":
		return ErrWriterRequired
	case b.Publisher == "":
		return ErrPublisherRequired
	case b.GenreID == "":
		return ErrGenreRequired
	case b.PublicationYear < MinPublicationYear || b.PublicationYear > time.Now().Year()+1:
		return ErrInvalidYear
	case b.Price < 0:
		return ErrInvalidPrice
	case b.StockQuantity < 0:
		return ErrInvalidStock
	}
	return nil
}

// HasStock 库存是否满足quantity
func (b *Book) HasStock(quantity int) bool {
	return b.StockQuantity >= quantity
}

// MarkDeleted 软删除，行保留供历史订单引用
func (b *Book) MarkDeleted(at time.Time) {
	b.Status = shared.StatusDeleted
	b.DeletedAt = &at
	b.UpdatedAt = at
}

// IsActive 是否可见
func (b *Book) IsActive() bool {
	return b.Status.IsActive()
}
