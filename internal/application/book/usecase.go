package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CreateBookUseCase 新建图书
// 分类存在性、书名唯一性检查和写入在同一事务内
type CreateBookUseCase struct {
	bookService book.Service
	txManager   *rdb.TxManager
}

func NewCreateBookUseCase(bookService book.Service, txManager *rdb.TxManager) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, txManager: txManager}
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookView, error) {
	var created *book.Book
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.CreateBook(ctx, req)
		created = b
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToBookView(created), nil
}

// UpdateBookUseCase 部分更新图书
type UpdateBookUseCase struct {
	bookService book.Service
	txManager   *rdb.TxManager
}

func NewUpdateBookUseCase(bookService book.Service, txManager *rdb.TxManager) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, txManager: txManager}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, id string, req UpdateBookRequest) (*BookView, error) {
	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.UpdateBook(ctx, id, req)
		updated = b
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToBookView(updated), nil
}

// DeleteBookUseCase 软删除图书，历史订单仍可读取
type DeleteBookUseCase struct {
	bookService book.Service
}

func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id string) error {
	return uc.bookService.DeleteBook(ctx, id)
}

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (*BookView, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBookView(b), nil
}

// ListBooksUseCase 图书列表：过滤、分页、白名单排序
type ListBooksUseCase struct {
	bookService book.Service
}

func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*response.PageData[*BookView], error) {
	page, err := shared.NewPageRequest(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	sort, err := book.ParseSortField(req.SortBy)
	if err != nil {
		return nil, err
	}
	order, err := shared.ParseSortOrder(req.Order)
	if err != nil {
		return nil, err
	}

	query := book.ListQuery{
		Title:     req.Title,
		Writer:    req.Writer,
		Publisher: req.Publisher,
		GenreID:   req.GenreID,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinYear:   req.MinYear,
		MaxYear:   req.MaxYear,
		Page:      page,
		Sort:      sort,
		Order:     order,
	}
	books, total, err := uc.bookService.ListBooks(ctx, query)
	if err != nil {
		return nil, err
	}

	views := make([]*BookView, len(books))
	for i, b := range books {
		views[i] = ToBookView(b)
	}
	return response.NewPageData(views, total, page.Page, page.Limit), nil
}
