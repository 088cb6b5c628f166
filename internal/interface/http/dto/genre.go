package dto

import (
	appgenre "github.com/xiebiao/bookshop/internal/application/genre"
)

// GenreRequest 新建或重命名分类
type GenreRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Science Fiction"`
}

// ListGenresQuery 分类列表查询参数
type ListGenresQuery struct {
	Name   string `form:"name" binding:"omitempty,max=100"`
	Page   int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	SortBy string `form:"sort_by" example:"name"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc ASC DESC" example:"asc"`
}

// ToApp 转换为用例参数
func (q ListGenresQuery) ToApp() appgenre.ListGenresRequest {
	return appgenre.ListGenresRequest{
		Name:   q.Name,
		Page:   q.Page,
		Limit:  q.Limit,
		SortBy: q.SortBy,
		Order:  q.Order,
	}
}
