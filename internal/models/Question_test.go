package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{}, len(Catalog))
	for _, q := range Catalog {
		_, dup := seen[q.ID]
		require.False(t, dup, "duplicate catalog id %s", q.ID)
		seen[q.ID] = struct{}{}
	}
}

func TestCatalog_ValidCategories(t *testing.T) {
	for _, q := range Catalog {
		assert.True(t, q.Category.Valid(), "question %s has invalid category %q", q.ID, q.Category)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Emoji)
	}
}

func TestQuestionByID_Found(t *testing.T) {
	q, ok := QuestionByID("5")
	require.True(t, ok)
	assert.Equal(t, "5", q.ID)
	assert.Equal(t, CategoryMemory, q.Category)
}

func TestQuestionByID_Missing(t *testing.T) {
	_, ok := QuestionByID("does-not-exist")
	assert.False(t, ok)
}

func TestCategory_Style(t *testing.T) {
	for _, c := range Categories() {
		style := c.Style()
		assert.NotEmpty(t, style.DisplayName)
		assert.NotEmpty(t, style.Icon)
		assert.NotEmpty(t, style.Color)
	}
}

func TestCategory_InvalidHasNoStyle(t *testing.T) {
	assert.False(t, Category("nostalgia").Valid())
	assert.Empty(t, Category("nostalgia").Style().DisplayName)
}
