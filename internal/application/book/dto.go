package book

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// BookView 图书响应，价格单位为分
type BookView struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Writer          string     `json:"writer"`
	Publisher       string     `json:"publisher"`
	PublicationYear int        `json:"publication_year"`
	Description     string     `json:"description"`
	Price           int64      `json:"price"`
	StockQuantity   int        `json:"stock_quantity"`
	GenreID         string     `json:"genre_id"`
	Genre           *GenreRef  `json:"genre,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"` // 仅在历史订单中出现
}

// GenreRef 内联的分类
type GenreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToBookView 实体转响应
func ToBookView(b *book.Book) *BookView {
	v := &BookView{
		ID:              b.ID,
		Title:           b.Title,
		Writer:          b.Writer,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		Price:           b.Price,
		StockQuantity:   b.StockQuantity,
		GenreID:         b.GenreID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		DeletedAt:       b.DeletedAt,
	}
	if b.Genre != nil {
		v.Genre = &GenreRef{ID: b.Genre.ID, Name: b.Genre.Name}
	}
	return v
}

// CreateBookRequest 新建图书
type CreateBookRequest = book.Draft

// UpdateBookRequest 部分更新，nil字段不修改
type UpdateBookRequest = book.Patch

// ListBooksRequest 列表参数，零值使用默认
type ListBooksRequest struct {
	Title     string
	Writer    string
	Publisher string
	GenreID   string
	MinPrice  *int64
	MaxPrice  *int64
	MinYear   *int
	MaxYear   *int
	Page      int
	Limit     int
	SortBy    string
	Order     string
}
