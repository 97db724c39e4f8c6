package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/models"
)

func TestValidateTitleLength(t *testing.T) {
	t.Run("limit counts characters, not bytes", func(t *testing.T) {
		// 60 cyrillic characters are 120 bytes and still a valid title
		assert.Empty(t, validateTitle(strings.Repeat("Б", 60), true))
		assert.Empty(t, validateTitle(strings.Repeat("Б", 100), true))
	})

	t.Run("101 characters are too long in any alphabet", func(t *testing.T) {
		for _, s := range []string{strings.Repeat("a", 101), strings.Repeat("Б", 101)} {
			errs := validateTitle(s, true)
			require.Len(t, errs, 1)
			assert.Equal(t, "title", errs[0].Field)
		}
	})

	t.Run("surrounding whitespace does not count", func(t *testing.T) {
		assert.Empty(t, validateTitle("  "+strings.Repeat("a", 100)+"  ", true))
	})
}

func TestValidateDescriptionLength(t *testing.T) {
	assert.Empty(t, validateDescription(strings.Repeat("ы", 500)))

	errs := validateDescription(strings.Repeat("ы", 501))
	require.Len(t, errs, 1)
	assert.Equal(t, "description", errs[0].Field)
}

func TestValidateRegisterNameLength(t *testing.T) {
	req := func(name string) *models.RegisterRequest {
		return &models.RegisterRequest{Name: name, Email: "a@b.co", Password: "secret123"}
	}

	assert.Empty(t, validateRegister(req(strings.Repeat("Ж", 50))))

	errs := validateRegister(req(strings.Repeat("Ж", 51)))
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}
