package book

import (
	"fmt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// MinPublicationYear 允许的最早出版年份
const MinPublicationYear = 1000

var (
	ErrTitleRequired     = apperrors.Validation("Title is required")
	ErrWriterRequired    = apperrors.Validation("Writer is required")
	ErrPublisherRequired = apperrors.Validation("Publisher is required")
	ErrGenreRequired     = apperrors.Validation("Genre ID is required")
	ErrInvalidYear       = apperrors.Validation(fmt.Sprintf("Publication year must be between %d and next year", MinPublicationYear))
	ErrInvalidPrice      = apperrors.Validation("Price must be greater than or equal to 0")
	ErrInvalidStock      = apperrors.Validation("Stock quantity must be greater than or equal to 0")
	ErrEmptyPatch        = apperrors.Validation("At least one field must be provided")
	ErrInvalidRange      = apperrors.Validation("Minimum must not be greater than maximum")

	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeTitleDuplicate, "Book with this title already exists")
)

// NotFound 图书不存在（或已删除）
func NotFound(id string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeBookNotFound, "Book with ID %s not found", id)
}

// IsNotFound 判断是否为图书不存在错误
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeBookNotFound)
}

// GenreUnavailable 引用的分类不存在，返回422
func GenreUnavailable(genreID string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeGenreMissing, "Genre with ID %s does not exist", genreID)
}

// StockShortage 库存不足的明细，挂在AppError.Err上供errors.As提取
type StockShortage struct {
	BookID    string
	Title     string
	Available int
	Requested int
}

func (s *StockShortage) Error() string {
	return fmt.Sprintf("book %s: available %d, requested %d", s.BookID, s.Available, s.Requested)
}

// InsufficientStock 库存不足
func InsufficientStock(b *Book, requested int) *apperrors.AppError {
	return &apperrors.AppError{
		Code: apperrors.ErrCodeInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for book %q. Available: %d, requested: %d",
			b.Title, b.StockQuantity, requested),
		Err: &StockShortage{
			BookID:    b.ID,
			Title:     b.Title,
			Available: b.StockQuantity,
			Requested: requested,
		},
	}
}
