package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("7")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, bad := range []string{"", "0", "-1", "abc", "7.5", "99999999999999999999"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", bad)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("x", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
}

func TestPagination(t *testing.T) {
	page, perPage := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPerPage, perPage)

	_, perPage = NormalizePage(2, 1000)
	assert.Equal(t, MaxPerPage, perPage)

	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))

	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}

func TestPagination_HugePage(t *testing.T) {
	page, _ := NormalizePage(9223372036854775807, 10)
	assert.Equal(t, MaxPage, page)

	offset := CalculateOffset(9223372036854775807, MaxPerPage)
	assert.Equal(t, (MaxPage-1)*MaxPerPage, offset)
	assert.GreaterOrEqual(t, offset, 0)
}
