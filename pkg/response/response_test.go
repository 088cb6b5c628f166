package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, *gin.Context, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, c, body
}

func TestSuccessAndCreated(t *testing.T) {
	w, _, body := record(t, func(c *gin.Context) { Success(c, "ok", gin.H{"id": "1"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])

	w, _, body = record(t, func(c *gin.Context) { Created(c, "created", nil) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, body["data"])
}

func TestError(t *testing.T) {
	t.Run("业务错误原样返回", func(t *testing.T) {
		w, c, body := record(t, func(c *gin.Context) {
			Error(c, apperrors.New(apperrors.ErrCodeBookNotFound, "Book with ID x not found"))
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Book with ID x not found", body["message"])
		assert.Contains(t, body, "data")
		assert.Nil(t, body["data"])
		assert.True(t, c.IsAborted())
		assert.Empty(t, c.Errors)
	})

	t.Run("内部错误不泄露细节", func(t *testing.T) {
		w, c, body := record(t, func(c *gin.Context) {
			Error(c, apperrors.Wrap(errors.New("dial tcp 10.0.0.1:3306: refused"), "query books"))
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", body["message"])
		assert.Len(t, c.Errors, 1)
	})

	t.Run("普通error按500处理", func(t *testing.T) {
		w, _, body := record(t, func(c *gin.Context) { Error(c, errors.New("boom")) })
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", body["message"])
	})
}

func TestNewPageData(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
	}{
		{"空结果", 0, 1, 10, 0},
		{"整除", 20, 1, 10, 2},
		{"向上取整", 21, 3, 10, 3},
		{"超出最后一页", 5, 9, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageData[string](nil, tt.total, tt.page, tt.limit)
			assert.NotNil(t, p.Items)
			assert.Empty(t, p.Items)
			assert.Equal(t, tt.totalPages, p.Pagination.TotalPages)
			assert.Equal(t, tt.page, p.Pagination.Page)
		})
	}

	raw, err := json.Marshal(NewPageData[int](nil, 0, 1, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"pagination":{"page":1,"limit":10,"total":0,"total_pages":0}}`, string(raw))
}
