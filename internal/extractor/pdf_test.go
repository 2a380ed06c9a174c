package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageSelection(t *testing.T) {
	t.Run("empty selects all", func(t *testing.T) {
		pages, err := ParsePageSelection("")
		require.NoError(t, err)
		assert.Nil(t, pages)
	})

	t.Run("single page", func(t *testing.T) {
		pages, err := ParsePageSelection("3")
		require.NoError(t, err)
		assert.Equal(t, []int{3}, pages)
	})

	t.Run("range", func(t *testing.T) {
		pages, err := ParsePageSelection("2-5")
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4, 5}, pages)
	})

	t.Run("mixed list", func(t *testing.T) {
		pages, err := ParsePageSelection("1, 3, 7-9")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 7, 8, 9}, pages)
	})

	t.Run("invalid tokens", func(t *testing.T) {
		for _, sel := range []string{"abc", "0", "-1", "5-2", "1-x", "1,,2"} {
			_, err := ParsePageSelection(sel)
			assert.Error(t, err, sel)
		}
	})
}

func TestPageFromFilename(t *testing.T) {
	page, err := pageFromFilename("page_7_image_2.png")
	require.NoError(t, err)
	assert.Equal(t, 7, page)

	_, err = pageFromFilename("thumbnail.png")
	assert.Error(t, err)

	_, err = pageFromFilename("page_x_image_1.png")
	assert.Error(t, err)
}

func TestPageCount_MissingFile(t *testing.T) {
	_, err := PageCount("testdata/does-not-exist.pdf")
	assert.Error(t, err)
}
