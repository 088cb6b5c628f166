package dto

import (
	appbook "github.com/xiebiao/bookshop/internal/application/book"
)

// CreateBookRequest 新建图书
// price、stock_quantity用指针区分“未传”和0
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=255" example:"The Go Programming Language"`
	Writer          string `json:"writer" binding:"required,max=255" example:"Alan Donovan"`
	Publisher       string `json:"publisher" binding:"required,max=255" example:"Addison-Wesley"`
	PublicationYear int    `json:"publication_year" binding:"required" example:"2015"`
	Description     string `json:"description" binding:"max=5000" example:"A practical introduction to Go"`
	Price           *int64 `json:"price" binding:"required,min=0" example:"4599"` // 分
	StockQuantity   *int   `json:"stock_quantity" binding:"required,min=0" example:"20"`
	GenreID         string `json:"genre_id" binding:"required" example:"6f1c2a8e-3c4b-4c55-9d6a-1a2b3c4d5e6f"`
}

// ToApp 转换为用例参数
func (r CreateBookRequest) ToApp() appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		Title:           r.Title,
		Writer:          r.Writer,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Description:     r.Description,
		Price:           *r.Price,
		StockQuantity:   *r.StockQuantity,
		GenreID:         r.GenreID,
	}
}

// UpdateBookRequest 部分更新，未传字段保持不变
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=255"`
	Writer          *string `json:"writer" binding:"omitempty,max=255"`
	Publisher       *string `json:"publisher" binding:"omitempty,max=255"`
	PublicationYear *int    `json:"publication_year"`
	Description     *string `json:"description" binding:"omitempty,max=5000"`
	Price           *int64  `json:"price" binding:"omitempty,min=0"`
	StockQuantity   *int    `json:"stock_quantity" binding:"omitempty,min=0"`
	GenreID         *string `json:"genre_id"`
}

// ToApp 转换为用例参数
func (r UpdateBookRequest) ToApp() appbook.UpdateBookRequest {
	return appbook.UpdateBookRequest{
		Title:           r.Title,
		Writer:          r.Writer,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Description:     r.Description,
		Price:           r.Price,
		StockQuantity:   r.StockQuantity,
		GenreID:         r.GenreID,
	}
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Title     string `form:"title" binding:"omitempty,max=255"`
	Writer    string `form:"writer" binding:"omitempty,max=255"`
	Publisher string `form:"publisher" binding:"omitempty,max=255"`
	GenreID   string `form:"genre_id"`
	MinPrice  *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice  *int64 `form:"max_price" binding:"omitempty,min=0"`
	MinYear   *int   `form:"min_year"`
	MaxYear   *int   `form:"max_year"`
	Page      int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	SortBy    string `form:"sort_by" example:"created_at"`
	Order     string `form:"order" binding:"omitempty,oneof=asc desc ASC DESC" example:"desc"`
}

// ToApp 转换为用例参数
func (q ListBooksQuery) ToApp() appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		Title:     q.Title,
		Writer:    q.Writer,
		Publisher: q.Publisher,
		GenreID:   q.GenreID,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinYear:   q.MinYear,
		MaxYear:   q.MaxYear,
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		Order:     q.Order,
	}
}
