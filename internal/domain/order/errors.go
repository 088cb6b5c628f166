package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var (
	ErrEmptyItems      = apperrors.Validation("Items cannot be empty")
	ErrMissingBookID   = apperrors.Validation("Each item must have a book_id")
	ErrInvalidQuantity = apperrors.Validation("Quantity must be at least 1")
	ErrUserRequired    = apperrors.New(apperrors.ErrCodeUnauthorized, "Authentication required. Please login first.")
	ErrInvalidRange    = apperrors.New(apperrors.ErrCodeInvalidDate, "start_date must not be after end_date")
)

// NotFound 订单不存在（或不属于当前用户）
func NotFound(id string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOrderNotFound, "Transaction with ID %s not found", id)
}

// IsNotFound 判断是否为订单不存在错误
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeOrderNotFound)
}
