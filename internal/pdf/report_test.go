package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/models"
)

func TestTruncateTitle(t *testing.T) {
	t.Run("short titles pass through", func(t *testing.T) {
		assert.Equal(t, "short title", truncateTitle("short title"))
		assert.Equal(t, strings.Repeat("a", 48), truncateTitle(strings.Repeat("a", 48)))
	})

	t.Run("long ascii title", func(t *testing.T) {
		got := truncateTitle(strings.Repeat("a", 60))
		assert.Equal(t, strings.Repeat("a", 45)+"...", got)
	})

	t.Run("never splits a rune", func(t *testing.T) {
		got := truncateTitle(strings.Repeat("Д", 60))
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("Д", 45)+"...", got)
	})
}

func TestTaskReportWritesPDF(t *testing.T) {
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{
			Title:     strings.Repeat("Д", 60),
			Status:    models.StatusPending,
			Priority:  models.PriorityHigh,
			DueDate:   &due,
			CreatedAt: time.Now(),
		},
	}
	stats := &models.TaskStats{
		Total:    1,
		ByStatus: []models.StatGroup{{Key: "pending", Count: 1}},
	}

	var buf bytes.Buffer
	gen := NewReportGenerator()
	require.NoError(t, gen.TaskReport(&buf, user, tasks, stats))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
