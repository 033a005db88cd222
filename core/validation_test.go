package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := &Document{
			Content:    "A valid product description",
			InsertedAt: time.Now().UTC(),
		}
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("valid without timestamps", func(t *testing.T) {
		doc := &Document{Content: "Timestamps set at insert time"}
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("nil document", func(t *testing.T) {
		err := ValidateDocument(nil)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("empty content", func(t *testing.T) {
		err := ValidateDocument(&Document{})
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("future timestamp", func(t *testing.T) {
		doc := &Document{
			Content:    "Valid content",
			InsertedAt: time.Now().Add(time.Hour),
		}
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestIsValidTimestamp(t *testing.T) {
	assert.True(t, IsValidTimestamp(time.Now().Add(-time.Minute)))
	assert.True(t, IsValidTimestamp(time.Now()))
	assert.False(t, IsValidTimestamp(time.Now().Add(time.Minute)))
}
