package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func TestNewPageRequest(t *testing.T) {
	p, err := NewPageRequest(0, 0)
	require.NoError(t, err)
	assert.Equal(t, PageRequest{Page: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p, err = NewPageRequest(3, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Offset())

	for _, tc := range [][2]int{{-1, 10}, {1, -5}, {1, MaxLimit + 1}} {
		_, err := NewPageRequest(tc[0], tc[1])
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation), "page=%d limit=%d", tc[0], tc[1])
	}
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.True(t, o.Desc())

	o, err = ParseSortOrder("ASC")
	require.NoError(t, err)
	assert.Equal(t, SortAsc, o)
	assert.False(t, o.Desc())

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}

func TestRecordStatus(t *testing.T) {
	assert.True(t, StatusActive.IsActive())
	assert.False(t, StatusDeleted.IsActive())
	assert.True(t, StatusDeleted.Valid())
	assert.False(t, RecordStatus("archived").Valid())
}
