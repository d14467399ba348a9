package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateNotRequestedReturnsEverything(t *testing.T) {
	items := seq(37)
	got, err := Paginate(items, Params{})
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestPaginateDefaults(t *testing.T) {
	got, err := Paginate(seq(25), Params{Page: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, seq(10), got, "page size should default to 10")

	got, err = Paginate(seq(25), Params{PageSize: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got, "page should default to 1")
}

func TestPaginateNeverExceedsPageSize(t *testing.T) {
	for _, size := range []int{1, 3, 10, 50} {
		for page := 1; page <= 6; page++ {
			got, err := Paginate(seq(23), Params{Page: intPtr(page), PageSize: intPtr(size)})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), size)
		}
	}
}

func TestPaginateLastPageRemainder(t *testing.T) {
	got, err := Paginate(seq(23), Params{Page: intPtr(3), PageSize: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23}, got)
}

func TestPaginateClampsPastLastPage(t *testing.T) {
	last, err := Paginate(seq(23), Params{Page: intPtr(3), PageSize: intPtr(10)})
	require.NoError(t, err)

	for _, page := range []int{4, 10, 9999} {
		got, err := Paginate(seq(23), Params{Page: intPtr(page), PageSize: intPtr(10)})
		require.NoError(t, err)
		assert.Equal(t, last, got, "page %d should clamp to the last page", page)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	got, err := Paginate([]int{}, Params{Page: intPtr(5), PageSize: intPtr(10)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPaginateRejectsNonPositivePageSize(t *testing.T) {
	_, err := Paginate(seq(5), Params{Page: intPtr(1), PageSize: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = Paginate(seq(5), Params{PageSize: intPtr(-3)})
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestPaginateNonPositivePageTreatedAsFirst(t *testing.T) {
	first, err := Paginate(seq(23), Params{Page: intPtr(1), PageSize: intPtr(10)})
	require.NoError(t, err)

	got, err := Paginate(seq(23), Params{Page: intPtr(0), PageSize: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(23, 10))
}
