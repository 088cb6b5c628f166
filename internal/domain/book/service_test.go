package book

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type memBooks struct {
	rows map[string]*Book
}

func (r *memBooks) Create(_ context.Context, b *Book) error {
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *memBooks) FindByID(_ context.Context, id string) (*Book, error) {
	b, ok := r.rows[id]
	if !ok || !b.IsActive() {
		return nil, NotFound(id)
	}
	cp := *b
	return &cp, nil
}

func (r *memBooks) ExistsByTitle(_ context.Context, title, excludeID string) (bool, error) {
	for _, b := range r.rows {
		if b.IsActive() && b.ID != excludeID && strings.EqualFold(b.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBooks) Update(_ context.Context, b *Book, _ Patch) error {
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *memBooks) SoftDelete(_ context.Context, id string, at time.Time) error {
	b, ok := r.rows[id]
	if !ok || !b.IsActive() {
		return NotFound(id)
	}
	b.MarkDeleted(at)
	return nil
}

func (r *memBooks) List(_ context.Context, _ ListQuery) ([]*Book, int64, error) {
	return nil, 0, nil
}

func (r *memBooks) LockByID(ctx context.Context, id string) (*Book, error) {
	return r.FindByID(ctx, id)
}

func (r *memBooks) DecrementStock(_ context.Context, id string, quantity int) (bool, error) {
	b := r.rows[id]
	if b.StockQuantity < quantity {
		return false, nil
	}
	b.StockQuantity -= quantity
	return true, nil
}

type memGenres struct {
	genre.Repository
	rows map[string]*genre.Genre
}

func (r *memGenres) FindByID(_ context.Context, id string) (*genre.Genre, error) {
	g, ok := r.rows[id]
	if !ok || !g.IsActive() {
		return nil, genre.NotFound(id)
	}
	return g, nil
}

func setup(t *testing.T) (Service, *memBooks, *genre.Genre) {
	t.Helper()
	g, err := genre.NewGenre("Fantasy")
	require.NoError(t, err)

	books := &memBooks{rows: map[string]*Book{}}
	genres := &memGenres{rows: map[string]*genre.Genre{g.ID: g}}
	return NewService(books, genres), books, g
}

func draft(genreID string) Draft {
	return Draft{
		Title:           "The Hobbit",
		Writer:          "J.R.R. Tolkien",
		Publisher:       "Allen & Unwin",
		PublicationYear: 1937,
		Price:           1999,
		StockQuantity:   5,
		GenreID:         genreID,
	}
}

func TestCreateBook(t *testing.T) {
	svc, books, g := setup(t)

	b, err := svc.CreateBook(context.Background(), draft(g.ID))
	require.NoError(t, err)
	assert.Equal(t, shared.StatusActive, b.Status)
	assert.Equal(t, "Fantasy", b.Genre.Name)
	assert.Contains(t, books.rows, b.ID)
}

func TestCreateBook_Validation(t *testing.T) {
	svc, _, g := setup(t)

	tests := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{"blank title", func(d *Draft) { d.Title = "  " }, ErrTitleRequired},
		{"no writer", func(d *Draft) { d.Writer = "" }, ErrWriterRequired},
		{"no publisher", func(d *Draft) { d.Publisher = "" }, ErrPublisherRequired},
		{"negative price", func(d *Draft) { d.Price = -1 }, ErrInvalidPrice},
		{"negative stock", func(d *Draft) { d.StockQuantity = -1 }, ErrInvalidStock},
		{"future year", func(d *Draft) { d.PublicationYear = time.Now().Year() + 5 }, ErrInvalidYear},
		{"no genre", func(d *Draft) { d.GenreID = "" }, ErrGenreRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draft(g.ID)
			tt.mutate(&d)
			_, err := svc.CreateBook(context.Background(), d)
			assert.Same(t, tt.want, err)
		})
	}
}

func TestCreateBook_UnknownGenre(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.CreateBook(context.Background(), draft("nope"))
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, 422, appErr.HTTPStatus())
	assert.Equal(t, "Genre with ID nope does not exist", appErr.Message)
}

func TestCreateBook_DuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc, _, g := setup(t)

	first, err := svc.CreateBook(ctx, draft(g.ID))
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, draft(g.ID))
	assert.ErrorIs(t, err, ErrTitleDuplicate)
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())

	require.NoError(t, svc.DeleteBook(ctx, first.ID))
	_, err = svc.CreateBook(ctx, draft(g.ID))
	assert.NoError(t, err, "soft-deleted titles can be reused")
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	svc, _, g := setup(t)
	b, err := svc.CreateBook(ctx, draft(g.ID))
	require.NoError(t, err)

	price := int64(2500)
	updated, err := svc.UpdateBook(ctx, b.ID, Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), updated.Price)
	assert.Equal(t, "The Hobbit", updated.Title)

	_, err = svc.UpdateBook(ctx, b.ID, Patch{})
	assert.Same(t, ErrEmptyPatch, err)

	neg := -3
	_, err = svc.UpdateBook(ctx, b.ID, Patch{StockQuantity: &neg})
	assert.Same(t, ErrInvalidStock, err)

	missing := "ghost"
	_, err = svc.UpdateBook(ctx, b.ID, Patch{GenreID: &missing})
	assert.Equal(t, 422, apperrors.GetAppError(err).HTTPStatus())

	_, err = svc.UpdateBook(ctx, "unknown", Patch{Price: &price})
	assert.True(t, IsNotFound(err))
}

func TestUpdateBook_TitleConflict(t *testing.T) {
	ctx := context.Background()
	svc, _, g := setup(t)

	_, err := svc.CreateBook(ctx, draft(g.ID))
	require.NoError(t, err)
	d := draft(g.ID)
	d.Title = "The Silmarillion"
	second, err := svc.CreateBook(ctx, d)
	require.NoError(t, err)

	title := "the hobbit"
	_, err = svc.UpdateBook(ctx, second.ID, Patch{Title: &title})
	assert.ErrorIs(t, err, ErrTitleDuplicate)
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	svc, books, g := setup(t)
	b, _ := svc.CreateBook(ctx, draft(g.ID))

	require.NoError(t, svc.DeleteBook(ctx, b.ID))
	assert.Equal(t, shared.StatusDeleted, books.rows[b.ID].Status)
	assert.NotNil(t, books.rows[b.ID].DeletedAt)

	_, err := svc.GetBook(ctx, b.ID)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Book with ID "+b.ID+" not found", apperrors.GetAppError(err).Message)
}

func TestListBooks_InvalidRange(t *testing.T) {
	svc, _, _ := setup(t)
	lo, hi := int64(500), int64(100)

	_, _, err := svc.ListBooks(context.Background(), ListQuery{MinPrice: &lo, MaxPrice: &hi})
	assert.Same(t, ErrInvalidRange, err)
}

func TestInsufficientStock(t *testing.T) {
	b := &Book{ID: "b1", Title: "Dune", StockQuantity: 2}
	err := InsufficientStock(b, 3)

	assert.Equal(t, `Insufficient stock for book "Dune". Available: 2, requested: 3`, err.Message)
	var shortage *StockShortage
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 2, shortage.Available)
	assert.Equal(t, 3, shortage.Requested)
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByCreatedAt, f)

	f, err = ParseSortField("stock_quantity")
	require.NoError(t, err)
	assert.Equal(t, SortByStockQuantity, f)

	_, err = ParseSortField("price desc, (select 1)")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestApply_KeepsEntityOnError(t *testing.T) {
	b, err := NewBook(draft("g"))
	require.NoError(t, err)

	empty := ""
	require.Error(t, b.Apply(Patch{Title: &empty}))
	assert.Equal(t, "The Hobbit", b.Title)
}
