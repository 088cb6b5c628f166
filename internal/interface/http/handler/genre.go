package handler

import (
	"github.com/gin-gonic/gin"

	appgenre "github.com/xiebiao/bookshop/internal/application/genre"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/validation"
)

// GenreHandler 分类HTTP处理器
type GenreHandler struct {
	createGenre *appgenre.CreateGenreUseCase
	getGenre    *appgenre.GetGenreUseCase
	listGenres  *appgenre.ListGenresUseCase
	updateGenre *appgenre.UpdateGenreUseCase
	deleteGenre *appgenre.DeleteGenreUseCase
}

// NewGenreHandler 创建分类处理器
func NewGenreHandler(
	createGenre *appgenre.CreateGenreUseCase,
	getGenre *appgenre.GetGenreUseCase,
	listGenres *appgenre.ListGenresUseCase,
	updateGenre *appgenre.UpdateGenreUseCase,
	deleteGenre *appgenre.DeleteGenreUseCase,
) *GenreHandler {
	return &GenreHandler{
		createGenre: createGenre,
		getGenre:    getGenre,
		listGenres:  listGenres,
		updateGenre: updateGenre,
		deleteGenre: deleteGenre,
	}
}

// Create 新建分类（管理员）
// @Summary      新建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.GenreRequest true "分类名称"
// @Success      201 {object} response.Response{data=appgenre.GenreView}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      409 {object} response.Response "名称重复"
// @Router       /api/v1/genres [post]
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.GenreRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createGenre.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Genre created successfully", result)
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        name query string false "名称（子串）"
// @Param        page query int false "页码" default(1)
// @Param        limit query int false "每页数量" default(10)
// @Param        sort_by query string false "排序字段" Enums(name, created_at, updated_at)
// @Param        order query string false "排序方向" Enums(asc, desc)
// @Success      200 {object} response.Response{data=response.PageData[appgenre.GenreView]}
// @Router       /api/v1/genres [get]
func (h *GenreHandler) List(c *gin.Context) {
	var q dto.ListGenresQuery
	if err := validation.BindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listGenres.Execute(c.Request.Context(), q.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Genres retrieved successfully", result)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response{data=appgenre.GenreView}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/genres/{id} [get]
func (h *GenreHandler) Get(c *gin.Context) {
	result, err := h.getGenre.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Genre retrieved successfully", result)
}

// Update 重命名分类（管理员）
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Param        request body dto.GenreRequest true "新名称"
// @Success      200 {object} response.Response{data=appgenre.GenreView}
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "名称重复"
// @Router       /api/v1/genres/{id} [patch]
func (h *GenreHandler) Update(c *gin.Context) {
	var req dto.GenreRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateGenre.Execute(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Genre updated successfully", result)
}

// Delete 软删除分类（管理员）
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/genres/{id} [delete]
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.deleteGenre.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Genre deleted successfully", nil)
}
