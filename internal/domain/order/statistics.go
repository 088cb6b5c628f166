package order

import (
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// NoDataGenre 没有任何销量时最多/最少分类的占位名称
const NoDataGenre = "No data"

const unknownGenre = "Unknown"

// DateRange 订单创建时间范围，零值表示不限
type DateRange struct {
	From        *time.Time // 包含
	To          *time.Time
	ToExclusive bool // 只给了日期时，To为次日零点且不包含
}

// ParseDateRange 解析 YYYY-MM-DD 或 RFC3339，空串表示不限
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}

	var r DateRange
	if s := strings.TrimSpace(start); s != "" {
		t, _, err := parseDate(s, loc)
		if err != nil {
			return DateRange{}, err
		}
		r.From = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, dateOnly, err := parseDate(s, loc)
		if err != nil {
			return DateRange{}, err
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
			r.ToExclusive = true
		}
		r.To = &t
	}

	if r.From != nil && r.To != nil && r.empty() {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

// empty 开始晚于结束；结束为次日零点时开始落在次日即为空
func (r DateRange) empty() bool {
	if r.ToExclusive {
		return !r.From.Before(*r.To)
	}
	return r.From.After(*r.To)
}

func parseDate(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, apperrors.ErrInvalidDate
}

// Contains 时间点是否落在范围内
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil {
		if r.ToExclusive && !t.Before(*r.To) {
			return false
		}
		if !r.ToExclusive && t.After(*r.To) {
			return false
		}
	}
	return true
}

// GenreSales 单个分类的销量汇总
type GenreSales struct {
	GenreID      string
	GenreName    string
	TotalSold    int
	TotalRevenue int64
}

// Summary 销售统计结果
type Summary struct {
	TotalTransactions        int
	TotalRevenue             int64
	AverageTransactionAmount int64
	MostSold                 GenreSales
	LeastSold                GenreSales
	ByGenre                  []GenreSales // 按首次出现顺序
}

// Summarize 汇总订单
// 金额 = quantity × 图书当前价格；平均金额四舍五入，无订单时为0
// 最多/最少分类按TotalSold比较，相同时保留先出现的
func Summarize(orders []*Order) Summary {
	s := Summary{TotalTransactions: len(orders)}

	index := map[string]int{}
	for _, o := range orders {
		for _, it := range o.Items {
			amount := it.Amount()
			s.TotalRevenue += amount

			id, name := genreOf(it)
			i, ok := index[id]
			if !ok {
				i = len(s.ByGenre)
				index[id] = i
				s.ByGenre = append(s.ByGenre, GenreSales{GenreID: id, GenreName: name})
			}
			s.ByGenre[i].TotalSold += it.Quantity
			s.ByGenre[i].TotalRevenue += amount
		}
	}

	s.AverageTransactionAmount = roundedAverage(s.TotalRevenue, s.TotalTransactions)

	if len(s.ByGenre) == 0 {
		s.MostSold = GenreSales{GenreName: NoDataGenre}
		s.LeastSold = GenreSales{GenreName: NoDataGenre}
		return s
	}

	most, least := s.ByGenre[0], s.ByGenre[0]
	for _, g := range s.ByGenre[1:] {
		if g.TotalSold > most.TotalSold {
			most = g
		}
		if g.TotalSold < least.TotalSold {
			least = g
		}
	}
	s.MostSold, s.LeastSold = most, least
	return s
}

func genreOf(it *OrderItem) (string, string) {
	if it.Book == nil || it.Book.Genre == nil {
		if it.Book != nil && it.Book.GenreID != "" {
			return it.Book.GenreID, unknownGenre
		}
		return "", unknownGenre
	}
	return it.Book.Genre.ID, it.Book.Genre.Name
}

// roundedAverage 整数四舍五入（半数远离0），n为0时返回0
func roundedAverage(total int64, n int) int64 {
	if n == 0 {
		return 0
	}
	d := int64(n)
	if total >= 0 {
		return (total*2 + d) / (2 * d)
	}
	return -((-total*2 + d) / (2 * d))
}
