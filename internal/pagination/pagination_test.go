package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		pageStr   string
		limitStr  string
		wantPage  int
		wantLimit int
	}{
		{"defaults when absent", "", "", 1, 10},
		{"explicit values", "2", "25", 2, 25},
		{"non-numeric falls back", "abc", "xyz", 1, 10},
		{"zero page clamps to first", "0", "10", 1, 10},
		{"negative page clamps to first", "-3", "10", 1, 10},
		{"zero limit falls back", "1", "0", 1, 10},
		{"limit capped at max", "1", "500", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := Parse(tt.pageStr, tt.limitStr)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 40, Offset(3, 20))
}

func TestNew(t *testing.T) {
	t.Run("middle page has more", func(t *testing.T) {
		p := New(2, 10, 25)
		assert.Equal(t, 25, p.Total)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasMore)
	})

	t.Run("last page has no more", func(t *testing.T) {
		p := New(3, 10, 25)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.HasMore)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := New(2, 10, 20)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasMore)
	})

	t.Run("empty result", func(t *testing.T) {
		p := New(1, 10, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasMore)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		p := New(9, 10, 25)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.HasMore)
	})
}
