package book_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb/rdbtest"
)

// sellAfterRead 在读出图书之后、写回之前扣减库存，模拟同时提交的订单
type sellAfterRead struct {
	book.Repository
	sold  int
	locks int
}

func (r *sellAfterRead) afterRead(ctx context.Context, b *book.Book) {
	if r.sold == 0 {
		return
	}
	ok, err := r.Repository.DecrementStock(ctx, b.ID, r.sold)
	if err != nil || !ok {
		panic("decrement failed")
	}
	r.sold = 0
}

func (r *sellAfterRead) FindByID(ctx context.Context, id string) (*book.Book, error) {
	b, err := r.Repository.FindByID(ctx, id)
	if err == nil {
		r.afterRead(ctx, b)
	}
	return b, err
}

func (r *sellAfterRead) LockByID(ctx context.Context, id string) (*book.Book, error) {
	r.locks++
	b, err := r.Repository.LockByID(ctx, id)
	if err == nil {
		r.afterRead(ctx, b)
	}
	return b, err
}

func TestUpdateBook_KeepsConcurrentStockChanges(t *testing.T) {
	ctx := context.Background()
	db := rdbtest.New(t)
	genres := rdb.NewGenreRepository(db)
	base := rdb.NewBookRepository(db)
	tx := rdb.NewTxManager(db)

	g, err := genre.NewGenre("Fiction")
	require.NoError(t, err)
	require.NoError(t, genres.Create(ctx, g))

	create := appbook.NewCreateBookUseCase(book.NewService(base, genres), tx)
	created, err := create.Execute(ctx, appbook.CreateBookRequest{
		Title:           "Dune",
		Writer:          "Frank Herbert",
		Publisher:       "Chilton",
		PublicationYear: 1965,
		Price:           1500,
		StockQuantity:   5,
		GenreID:         g.ID,
	})
	require.NoError(t, err)

	t.Run("只改价格不覆盖已扣减的库存", func(t *testing.T) {
		repo := &sellAfterRead{Repository: base, sold: 3}
		update := appbook.NewUpdateBookUseCase(book.NewService(repo, genres), tx)

		price := int64(2000)
		view, err := update.Execute(ctx, created.ID, appbook.UpdateBookRequest{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.locks, "更新前应对图书加行锁")
		assert.EqualValues(t, 2000, view.Price)
		assert.Equal(t, 2, view.StockQuantity)
		require.NotNil(t, view.Genre)
		assert.Equal(t, "Fiction", view.Genre.Name)

		got, err := base.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.StockQuantity)
		assert.EqualValues(t, 2000, got.Price)
		assert.Equal(t, "Dune", got.Title)
	})

	t.Run("显式修改库存时写入新值", func(t *testing.T) {
		update := appbook.NewUpdateBookUseCase(book.NewService(base, genres), tx)

		stock := 10
		view, err := update.Execute(ctx, created.ID, appbook.UpdateBookRequest{StockQuantity: &stock})
		require.NoError(t, err)
		assert.Equal(t, 10, view.StockQuantity)
		assert.EqualValues(t, 2000, view.Price)
	})
}
