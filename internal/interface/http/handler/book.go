package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/validation"
)

// BookHandler 图书HTTP处理器
// 只负责解析请求、调用应用层、返回响应
type BookHandler struct {
	createBook *appbook.CreateBookUseCase
	getBook    *appbook.GetBookUseCase
	listBooks  *appbook.ListBooksUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	getBook *appbook.GetBookUseCase,
	listBooks *appbook.ListBooksUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBook: createBook,
		getBook:    getBook,
		listBooks:  listBooks,
		updateBook: updateBook,
		deleteBook: deleteBook,
	}
}

// Create 新建图书
// @Summary      新建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookView}
// @Failure      400 {object} response.Response "参数错误或书名重复"
// @Failure      401 {object} response.Response "未登录"
// @Failure      422 {object} response.Response "分类不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), req.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Book created successfully", result)
}

// List 图书列表
// @Summary      图书列表
// @Description  支持按书名、作者、出版社模糊过滤，按分类、价格和出版年份过滤
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        title query string false "书名（子串）"
// @Param        writer query string false "作者（子串）"
// @Param        publisher query string false "出版社（子串）"
// @Param        genre_id query string false "分类ID"
// @Param        min_price query int false "最低价格（分）"
// @Param        max_price query int false "最高价格（分）"
// @Param        min_year query int false "最早出版年份"
// @Param        max_year query int false "最晚出版年份"
// @Param        page query int false "页码" default(1)
// @Param        limit query int false "每页数量" default(10)
// @Param        sort_by query string false "排序字段" Enums(title, writer, publisher, publication_year, price, stock_quantity, created_at, updated_at)
// @Param        order query string false "排序方向" Enums(asc, desc)
// @Success      200 {object} response.Response{data=response.PageData[appbook.BookView]}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := validation.BindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), q.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Books retrieved successfully", result)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	result, err := h.getBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Book retrieved successfully", result)
}

// Update 部分更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Param        request body dto.UpdateBookRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      422 {object} response.Response "分类不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), c.Param("id"), req.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Book updated successfully", result)
}

// Delete 软删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.deleteBook.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Book deleted successfully", nil)
}
