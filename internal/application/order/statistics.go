package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// StatisticsUseCase 销售统计
type StatisticsUseCase struct {
	orderRepo order.Repository
	loc       *time.Location // 解析纯日期参数使用的时区
}

func NewStatisticsUseCase(orderRepo order.Repository, loc *time.Location) *StatisticsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &StatisticsUseCase{orderRepo: orderRepo, loc: loc}
}

// Execute 日期为空表示不限，纯日期的end_date包含当天
func (uc *StatisticsUseCase) Execute(ctx context.Context, startDate, endDate string) (*StatisticsView, error) {
	dr, err := order.ParseDateRange(startDate, endDate, uc.loc)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.FindInRange(ctx, dr)
	if err != nil {
		return nil, err
	}
	return ToStatisticsView(order.Summarize(orders)), nil
}
