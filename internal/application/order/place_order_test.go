package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb/rdbtest"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []apporder.OrderPlacedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, e apporder.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type env struct {
	db        *gorm.DB
	books     book.Repository
	genres    genre.Repository
	orders    order.Repository
	publisher *recordingPublisher
	place     *apporder.PlaceOrderUseCase
	get       *apporder.GetOrderUseCase
	list      *apporder.ListOrdersUseCase
	stats     *apporder.StatisticsUseCase
}

func newEnv(t *testing.T) *env {
	db := rdbtest.New(t)
	e := &env{
		db:        db,
		books:     rdb.NewBookRepository(db),
		genres:    rdb.NewGenreRepository(db),
		orders:    rdb.NewOrderRepository(db),
		publisher: &recordingPublisher{},
	}
	e.place = apporder.NewPlaceOrderUseCase(rdb.NewTxManager(db), e.books, e.orders, e.publisher)
	e.get = apporder.NewGetOrderUseCase(e.orders)
	e.list = apporder.NewListOrdersUseCase(e.orders)
	e.stats = apporder.NewStatisticsUseCase(e.orders, nil)
	return e
}

func (e *env) genre(t *testing.T, name string) *genre.Genre {
	t.Helper()
	g, err := genre.NewGenre(name)
	require.NoError(t, err)
	require.NoError(t, e.genres.Create(context.Background(), g))
	return g
}

func (e *env) book(t *testing.T, title string, g *genre.Genre, price int64, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Draft{
		Title:           title,
		Writer:          "Someone",
		Publisher:       "Acme",
		PublicationYear: 2001,
		Price:           price,
		StockQuantity:   stock,
		GenreID:         g.ID,
	})
	require.NoError(t, err)
	require.NoError(t, e.books.Create(context.Background(), b))
	return b
}

func (e *env) stock(t *testing.T, id string) int {
	t.Helper()
	var m rdb.BookModel
	require.NoError(t, e.db.First(&m, "id = ?", id).Error)
	return m.StockQuantity
}

func (e *env) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&rdb.OrderModel{}).Count(&n).Error)
	return n
}

func TestPlaceOrder_DecrementsExactly(t *testing.T) {
	e := newEnv(t)
	g := e.genre(t, "Fiction")
	dune := e.book(t, "Dune", g, 1500, 10)
	cosmos := e.book(t, "Cosmos", g, 2500, 4)

	view, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{
		UserID: "user-1",
		Items: []order.Line{
			{BookID: dune.ID, Quantity: 3},
			{BookID: cosmos.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, e.stock(t, dune.ID))
	assert.Equal(t, 0, e.stock(t, cosmos.ID))

	assert.Equal(t, "user-1", view.UserID)
	require.Len(t, view.Items, 2)
	assert.Equal(t, dune.ID, view.Items[0].BookID)
	require.NotNil(t, view.Items[0].Book)
	require.NotNil(t, view.Items[0].Book.Genre)
	assert.Equal(t, "Fiction", view.Items[0].Book.Genre.Name)
	assert.Equal(t, 7, view.TotalQuantity)
	assert.EqualValues(t, 3*1500+4*2500, view.TotalAmount)

	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, view.ID, e.publisher.events[0].OrderID)
}

func TestPlaceOrder_AllOrNothing(t *testing.T) {
	e := newEnv(t)
	g := e.genre(t, "Fiction")
	dune := e.book(t, "Dune", g, 1500, 5)
	cosmos := e.book(t, "Cosmos", g, 2500, 2)

	t.Run("第二项库存不足", func(t *testing.T) {
		_, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{
			UserID: "user-1",
			Items: []order.Line{
				{BookID: dune.ID, Quantity: 1},
				{BookID: cosmos.ID, Quantity: 3},
			},
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrCodeInsufficientStock, appErr.Code)
		assert.Equal(t, `Insufficient stock for book "Cosmos". Available: 2, requested: 3`, appErr.Message)
	})

	t.Run("第二项不存在", func(t *testing.T) {
		_, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{
			UserID: "user-1",
			Items: []order.Line{
				{BookID: dune.ID, Quantity: 1},
				{BookID: "missing", Quantity: 1},
			},
		})
		assert.True(t, book.IsNotFound(err))
	})

	assert.Equal(t, 5, e.stock(t, dune.ID), "失败的下单不能改变库存")
	assert.Equal(t, 2, e.stock(t, cosmos.ID))
	assert.Zero(t, e.orderCount(t))
	assert.Empty(t, e.publisher.events, "失败时不发布事件")
}

func TestPlaceOrder_SameBookTwice(t *testing.T) {
	e := newEnv(t)
	dune := e.book(t, "Dune", e.genre(t, "Fiction"), 1500, 3)

	_, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{
		UserID: "user-1",
		Items: []order.Line{
			{BookID: dune.ID, Quantity: 2},
			{BookID: dune.ID, Quantity: 2},
		},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Equal(t, 3, e.stock(t, dune.ID))
}

func TestPlaceOrder_ValidationBeforeStore(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		name  string
		items []order.Line
		want  error
	}{
		{"空明细", nil, order.ErrEmptyItems},
		{"缺少book_id", []order.Line{{BookID: " ", Quantity: 1}}, order.ErrMissingBookID},
		{"数量为0", []order.Line{{BookID: "b", Quantity: 0}}, order.ErrInvalidQuantity},
		{"数量为负", []order.Line{{BookID: "b", Quantity: -2}}, order.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{UserID: "u", Items: tc.items})
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestPlaceOrder_DeletedBookNotOrderable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	dune := e.book(t, "Dune", e.genre(t, "Fiction"), 1500, 3)
	require.NoError(t, e.books.SoftDelete(ctx, dune.ID, dune.UpdatedAt))

	_, err := e.place.Execute(ctx, apporder.PlaceOrderRequest{
		UserID: "user-1",
		Items:  []order.Line{{BookID: dune.ID, Quantity: 1}},
	})
	assert.True(t, book.IsNotFound(err))
}

func TestPlaceOrder_ConcurrentNoOversell(t *testing.T) {
	e := newEnv(t)
	dune := e.book(t, "Dune", e.genre(t, "Fiction"), 1500, 5)

	const buyers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		shortage  int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{
				UserID: "user-1",
				Items:  []order.Line{{BookID: dune.ID, Quantity: 1}},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock):
				shortage++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, buyers-5, shortage)
	assert.Equal(t, 0, e.stock(t, dune.ID))
	assert.EqualValues(t, 5, e.orderCount(t))
}

func TestPlaceOrder_PublishFailureIgnored(t *testing.T) {
	e := newEnv(t)
	e.publisher.err = errors.New("broker down")
	dune := e.book(t, "Dune", e.genre(t, "Fiction"), 1500, 5)

	view, err := e.place.Execute(context.Background(), apporder.PlaceOrderRequest{
		UserID: "user-1",
		Items:  []order.Line{{BookID: dune.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, 4, e.stock(t, dune.ID))
}

func TestGetOrder_OtherUserIsNotFound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	dune := e.book(t, "Dune", e.genre(t, "Fiction"), 1500, 5)
	placed, err := e.place.Execute(ctx, apporder.PlaceOrderRequest{
		UserID: "owner",
		Items:  []order.Line{{BookID: dune.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := e.get.Execute(ctx, "owner", placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	_, err = e.get.Execute(ctx, "intruder", placed.ID)
	assert.True(t, order.IsNotFound(err))
}

func TestListOrders_Pagination(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	dune := e.book(t, "Dune", e.genre(t, "Fiction"), 1500, 10)
	for i := 0; i < 3; i++ {
		_, err := e.place.Execute(ctx, apporder.PlaceOrderRequest{
			UserID: "user-1",
			Items:  []order.Line{{BookID: dune.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	page, err := e.list.Execute(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	page, err = e.list.Execute(ctx, "user-1", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Orders)
	assert.EqualValues(t, 3, page.Pagination.Total)

	_, err = e.list.Execute(ctx, "user-1", 1, 101)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}
