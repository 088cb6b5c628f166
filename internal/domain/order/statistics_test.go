package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/genre"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func testBook(id string, price int64, g *genre.Genre) *book.Book {
	return &book.Book{ID: id, Title: "Book " + id, Price: price, GenreID: g.ID, Genre: g}
}

func orderWith(items ...*OrderItem) *Order {
	o := NewOrder("u-1")
	o.Items = items
	return o
}

func line(b *book.Book, qty int) *OrderItem {
	return &OrderItem{BookID: b.ID, Quantity: qty, Book: b}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalTransactions)
	assert.Equal(t, int64(0), s.TotalRevenue)
	assert.Equal(t, int64(0), s.AverageTransactionAmount)
	assert.Equal(t, GenreSales{GenreName: NoDataGenre}, s.MostSold)
	assert.Equal(t, GenreSales{GenreName: NoDataGenre}, s.LeastSold)
	assert.Empty(t, s.ByGenre)
}

func TestSummarize_RevenueAndGenres(t *testing.T) {
	fantasy := &genre.Genre{ID: "g1", Name: "Fantasy"}
	horror := &genre.Genre{ID: "g2", Name: "Horror"}
	poetry := &genre.Genre{ID: "g3", Name: "Poetry"}

	b1 := testBook("b1", 1000, fantasy)
	b2 := testBook("b2", 2500, horror)
	b3 := testBook("b3", 300, poetry)

	orders := []*Order{
		orderWith(line(b1, 2), line(b2, 1)), // 2000 + 2500
		orderWith(line(b1, 3)),              // 3000
		orderWith(line(b3, 1)),              // 300
	}

	s := Summarize(orders)

	assert.Equal(t, 3, s.TotalTransactions)
	assert.Equal(t, int64(7800), s.TotalRevenue)
	assert.Equal(t, int64(2600), s.AverageTransactionAmount)

	require.Len(t, s.ByGenre, 3)
	assert.Equal(t, GenreSales{GenreID: "g1", GenreName: "Fantasy", TotalSold: 5, TotalRevenue: 5000}, s.ByGenre[0])
	assert.Equal(t, "Fantasy", s.MostSold.GenreName)
	// Horror和Poetry都卖出1本，保留先出现的Horror
	assert.Equal(t, "Horror", s.LeastSold.GenreName)
	assert.Equal(t, int64(2500), s.LeastSold.TotalRevenue)
}

func TestSummarize_TiesKeepFirst(t *testing.T) {
	a := &genre.Genre{ID: "a", Name: "A"}
	b := &genre.Genre{ID: "b", Name: "B"}
	s := Summarize([]*Order{
		orderWith(line(testBook("x", 100, a), 2)),
		orderWith(line(testBook("y", 100, b), 2)),
	})

	assert.Equal(t, "A", s.MostSold.GenreName)
	assert.Equal(t, "A", s.LeastSold.GenreName)
}

func TestSummarize_UsesCurrentPrice(t *testing.T) {
	g := &genre.Genre{ID: "g", Name: "Drama"}
	b := testBook("b", 1000, g)
	orders := []*Order{orderWith(line(b, 2))}

	before := Summarize(orders)
	b.Price = 1500
	after := Summarize(orders)

	assert.Equal(t, int64(2000), before.TotalRevenue)
	assert.Equal(t, int64(3000), after.TotalRevenue)
}

func TestSummarize_RoundsAverage(t *testing.T) {
	g := &genre.Genre{ID: "g", Name: "Drama"}
	b5 := testBook("five", 5, g)
	b0 := testBook("zero", 0, g)

	s := Summarize([]*Order{orderWith(line(b5, 1)), orderWith(line(b0, 1))})
	assert.Equal(t, int64(3), s.AverageTransactionAmount, "2.5 rounds up")

	s = Summarize([]*Order{orderWith(line(b5, 1)), orderWith(line(b0, 1)), orderWith(line(b0, 1))})
	assert.Equal(t, int64(2), s.AverageTransactionAmount, "1.67 rounds to 2")
}

func TestSummarize_MissingGenre(t *testing.T) {
	b := &book.Book{ID: "b", Price: 10, GenreID: "gone"}
	s := Summarize([]*Order{orderWith(line(b, 1))})

	require.Len(t, s.ByGenre, 1)
	assert.Equal(t, "gone", s.ByGenre[0].GenreID)
	assert.Equal(t, unknownGenre, s.ByGenre[0].GenreName)
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("", "", nil)
	require.NoError(t, err)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)
	assert.True(t, r.Contains(time.Now()))

	r, err = ParseDateRange("2024-01-01", "2024-01-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *r.From)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *r.To)
	assert.True(t, r.ToExclusive)
	assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)))

	r, err = ParseDateRange("2024-01-01T10:00:00Z", "2024-01-01T12:00:00+02:00", nil)
	require.NoError(t, err)
	assert.False(t, r.ToExclusive)
	assert.True(t, r.Contains(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
}

func TestParseDateRange_Errors(t *testing.T) {
	_, err := ParseDateRange("01/02/2024", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())

	_, err = ParseDateRange("", "yesterday", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)

	_, err = ParseDateRange("2024-02-01", "2024-01-01", nil)
	assert.ErrorIs(t, err, ErrInvalidRange)

	// 结束日期按整天包含，开始只晚一天也要拒绝
	_, err = ParseDateRange("2024-05-02", "2024-05-01", nil)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseDateRange("2024-05-02T00:00:00Z", "2024-05-01", nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseDateRange_SameDay(t *testing.T) {
	r, err := ParseDateRange("2024-05-01", "2024-05-01", nil)
	require.NoError(t, err)
	assert.True(t, r.Contains(time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)))

	r, err = ParseDateRange("2024-05-01T10:00:00Z", "2024-05-01", nil)
	require.NoError(t, err)
	assert.True(t, r.Contains(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)))
}
