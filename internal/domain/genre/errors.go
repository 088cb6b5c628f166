package genre

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var (
	ErrNameRequired  = apperrors.Validation("Genre name is required")
	ErrNameTooLong   = apperrors.Validation("Genre name must be at most 100 characters")
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeGenreDuplicate, "Genre with this name already exists")
)

// NotFound 分类不存在（或已删除）
func NotFound(id string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeGenreNotFound, "Genre with ID %s not found", id)
}

// IsNotFound 判断是否为分类不存在错误
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeGenreNotFound)
}
