package dtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b", "c"}, 3, 43, 20, 2, "/api/jobs")

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, int64(43), page.Total)
	assert.Equal(t, 20, page.PerPage)
	assert.Equal(t, 21, page.From)
	assert.Equal(t, 23, page.To)
	require.NotNil(t, page.NextPageURL)
	assert.Equal(t, "/api/jobs?page=3", *page.NextPageURL)
	require.NotNil(t, page.PrevPageURL)
	assert.Equal(t, "/api/jobs?page=1", *page.PrevPageURL)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage([]string{}, 0, 0, 20, 1, "/api/jobs")

	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.LastPage)
	assert.Equal(t, 0, page.From)
	assert.Equal(t, 0, page.To)
	assert.Nil(t, page.NextPageURL)
	assert.Nil(t, page.PrevPageURL)
}
