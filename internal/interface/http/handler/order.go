package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/validation"
)

// OrderHandler 交易（订单）HTTP处理器
type OrderHandler struct {
	placeOrder *apporder.PlaceOrderUseCase
	getOrder   *apporder.GetOrderUseCase
	listOrders *apporder.ListOrdersUseCase
	statistics *apporder.StatisticsUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrder *apporder.PlaceOrderUseCase,
	getOrder *apporder.GetOrderUseCase,
	listOrders *apporder.ListOrdersUseCase,
	statistics *apporder.StatisticsUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrder: placeOrder,
		getOrder:   getOrder,
		listOrders: listOrders,
		statistics: statistics,
	}
}

// Place 下单
// @Summary      下单
// @Description  在一个事务中扣减库存并创建交易，任何一项失败都不会产生订单
// @Tags         交易
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "下单明细"
// @Success      201 {object} response.Response{data=apporder.OrderView}
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/transactions [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.placeOrder.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID: middleware.GetUserID(c),
		Items:  req.Lines(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction created successfully", result)
}

// List 当前用户的交易
// @Summary      交易列表
// @Tags         交易
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        limit query int false "每页数量" default(10)
// @Success      200 {object} response.Response{data=apporder.OrderPage}
// @Router       /api/v1/transactions [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := validation.BindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listOrders.Execute(c.Request.Context(), middleware.GetUserID(c), q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Transactions retrieved successfully", result)
}

// Get 交易详情
// @Summary      交易详情
// @Tags         交易
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "交易ID"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      404 {object} response.Response "交易不存在"
// @Router       /api/v1/transactions/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	result, err := h.getOrder.Execute(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Transaction retrieved successfully", result)
}

// Statistics 销售统计
// @Summary      销售统计
// @Description  收入按图书当前价格计算；纯日期的end_date包含当天
// @Tags         交易
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "开始日期 YYYY-MM-DD 或 RFC3339"
// @Param        end_date query string false "结束日期 YYYY-MM-DD 或 RFC3339"
// @Success      200 {object} response.Response{data=apporder.StatisticsView}
// @Failure      400 {object} response.Response "日期格式错误"
// @Router       /api/v1/transactions/statistics [get]
func (h *OrderHandler) Statistics(c *gin.Context) {
	var q dto.StatisticsQuery
	if err := validation.BindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.statistics.Execute(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Statistics retrieved successfully", result)
}
