package storage

import (
	"testing"
	"time"

	"github.com/poiesic/pricewise/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "minimal document",
			doc: &core.Document{
				Id:         core.ID(1),
				Content:    "USB-C charging cable, braided, 2m",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "document with metadata",
			doc: &core.Document{
				Id:      core.ID(2),
				Content: "Mechanical keyboard with hot-swappable switches",
				Metadata: map[string]string{
					core.MetaTitle: "KB-750 Mechanical Keyboard",
					core.MetaPrice: "$89.99",
					core.MetaURL:   "https://example.com/kb-750",
				},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "document with vector",
			doc: &core.Document{
				Id:         core.ID(3),
				Content:    "Noise cancelling headphones",
				Vector:     []float32{0.1, 0.2, 0.3, 0.4, 0.5},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "document with everything",
			doc: &core.Document{
				Id:      core.ID(4),
				Content: "Complete document with all fields populated for comprehensive testing",
				Metadata: map[string]string{
					core.MetaTitle:       "Full Product",
					core.MetaPrice:       "$1,299.00",
					core.MetaURL:         "https://example.com/full",
					core.MetaChunkIndex:  "0",
					core.MetaTotalChunks: "3",
				},
				Vector:     []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode content",
			doc: &core.Document{
				Id:         core.ID(5),
				Content:    "Bluetooth スピーカー 🎵 très bon",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "long vector",
			doc: &core.Document{
				Id:         core.IDFromContent("long vector document"),
				Content:    "Document with a typical embedding size",
				Vector:     make([]float32, 1536),
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalDocument(tt.doc)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.doc.Id, decoded.Id)
			assert.Equal(t, tt.doc.Content, decoded.Content)
			assert.True(t, tt.doc.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.doc.UpdatedAt.Equal(decoded.UpdatedAt))
			// Handle nil vs empty
			if len(tt.doc.Metadata) == 0 {
				assert.Empty(t, decoded.Metadata)
			} else {
				assert.Equal(t, tt.doc.Metadata, decoded.Metadata)
			}
			if len(tt.doc.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.doc.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestRoundTripConsistency(t *testing.T) {
	t.Run("multiple marshal-unmarshal cycles", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		original := &core.Document{
			Id:      core.ID(999),
			Content: "Testing consistency",
			Metadata: map[string]string{
				core.MetaTitle: "Consistency",
				core.MetaPrice: "$10.00",
			},
			Vector:     []float32{0.1, 0.2, 0.3},
			InsertedAt: now,
			UpdatedAt:  now,
		}

		// Perform 3 marshal-unmarshal cycles
		current := original
		for i := 0; i < 3; i++ {
			data := MarshalDocument(current)
			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			current = decoded
		}

		// Verify final result matches original
		assert.Equal(t, original.Id, current.Id)
		assert.Equal(t, original.Content, current.Content)
		assert.Equal(t, original.Metadata, current.Metadata)
		assert.Equal(t, original.Vector, current.Vector)
	})
}
