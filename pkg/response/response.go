package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// Response 统一响应结构
// Success 表示业务是否成功；失败时 Data 为 null
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success 200 成功响应
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 201 成功响应
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
// HTTP状态码由AppError业务码推导；5xx只返回通用提示，细节写日志
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()
	message := appErr.Message

	log := logger.FromContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", appErr.Err,
		)
		message = apperrors.ErrInternal.Message
		_ = c.Error(err) // 供tracing中间件记录
	} else if appErr.Err != nil {
		log.Warn("request rejected", "code", appErr.Code, "error", appErr.Err)
	}

	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// Pagination 分页元信息
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination total_pages = ceil(total/limit)
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PageData 列表数据封装
type PageData[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPageData 创建分页数据，nil切片序列化为[]
func NewPageData[T any](items []T, total int64, page, limit int) *PageData[T] {
	if items == nil {
		items = []T{}
	}
	return &PageData[T]{
		Items:      items,
		Pagination: NewPagination(total, page, limit),
	}
}
