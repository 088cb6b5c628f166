package order

import (
	"time"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/response"
)

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID string // 从JWT中提取
	Items  []order.Line
}

// OrderView 订单响应，明细内联图书和分类
type OrderView struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Items         []OrderItemView `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   int64           `json:"total_amount"` // 按图书当前价格计算
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderItemView 订单明细
type OrderItemView struct {
	ID        string            `json:"id"`
	BookID    string            `json:"book_id"`
	Quantity  int               `json:"quantity"`
	Book      *appbook.BookView `json:"book,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// OrderPage 订单列表
type OrderPage struct {
	Orders     []*OrderView        `json:"orders"`
	Pagination response.Pagination `json:"pagination"`
}

// ToOrderView 实体转响应
func ToOrderView(o *order.Order) *OrderView {
	v := &OrderView{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         make([]OrderItemView, len(o.Items)),
		TotalQuantity: o.TotalQuantity(),
		TotalAmount:   o.TotalAmount(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for i, it := range o.Items {
		item := OrderItemView{
			ID:        it.ID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			CreatedAt: it.CreatedAt,
		}
		if it.Book != nil {
			item.Book = appbook.ToBookView(it.Book)
		}
		v.Items[i] = item
	}
	return v
}

// GenreSalesView 分类销量，字段沿用驼峰命名
type GenreSalesView struct {
	GenreID      string `json:"genreId,omitempty"`
	GenreName    string `json:"genreName"`
	TotalSold    int    `json:"totalSold"`
	TotalRevenue int64  `json:"totalRevenue"`
}

// StatisticsView 销售统计
type StatisticsView struct {
	TotalTransactions        int              `json:"totalTransactions"`
	TotalRevenue             int64            `json:"totalRevenue"`
	AverageTransactionAmount int64            `json:"averageTransactionAmount"`
	GenreWithMostSales       GenreSalesView   `json:"genreWithMostSales"`
	GenreWithLeastSales      GenreSalesView   `json:"genreWithLeastSales"`
	SalesByGenre             []GenreSalesView `json:"salesByGenre"`
}

func toGenreSalesView(g order.GenreSales) GenreSalesView {
	return GenreSalesView{
		GenreID:      g.GenreID,
		GenreName:    g.GenreName,
		TotalSold:    g.TotalSold,
		TotalRevenue: g.TotalRevenue,
	}
}

// ToStatisticsView 汇总结果转响应
func ToStatisticsView(s order.Summary) *StatisticsView {
	v := &StatisticsView{
		TotalTransactions:        s.TotalTransactions,
		TotalRevenue:             s.TotalRevenue,
		AverageTransactionAmount: s.AverageTransactionAmount,
		GenreWithMostSales:       toGenreSalesView(s.MostSold),
		GenreWithLeastSales:      toGenreSalesView(s.LeastSold),
		SalesByGenre:             make([]GenreSalesView, len(s.ByGenre)),
	}
	for i, g := range s.ByGenre {
		v.SalesByGenre[i] = toGenreSalesView(g)
	}
	return v
}
