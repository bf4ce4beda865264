package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localeforge/core/pkg/domain"
)

func TestGenerateID_Deterministic(t *testing.T) {
	desc := domain.MessageDescriptor{
		Description:    "Save the current document",
		DefaultMessage: "Save",
	}

	first, err := generateID(desc)
	require.NoError(t, err)

	second, err := generateID(desc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 40) // 160-bit digest, hex encoded
}

func TestGenerateID_KnownDigests(t *testing.T) {
	tests := []struct {
		name     string
		desc     domain.MessageDescriptor
		expected string
	}{
		{
			name:     "message only",
			desc:     domain.MessageDescriptor{DefaultMessage: "Hello {name}"},
			expected: "11e18e3830f221450a28a97879fce43d5d86d180",
		},
		{
			name: "message then description in one running digest",
			desc: domain.MessageDescriptor{
				DefaultMessage: "Save",
				Description:    "Save the current document",
			},
			expected: "a231772f692c47d06e3db8e2fbfdf87e0981be8c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := generateID(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestGenerateID_SensitiveToBothFields(t *testing.T) {
	base := domain.MessageDescriptor{
		DefaultMessage: "Save",
		Description:    "Save the current document",
	}
	baseID, err := generateID(base)
	require.NoError(t, err)

	changedMessage := base
	changedMessage.DefaultMessage = "Save all"
	changedMessageID, err := generateID(changedMessage)
	require.NoError(t, err)
	assert.NotEqual(t, baseID, changedMessageID)

	changedDescription := base
	changedDescription.Description = "Save every open document"
	changedDescriptionID, err := generateID(changedDescription)
	require.NoError(t, err)
	assert.NotEqual(t, baseID, changedDescriptionID)
	assert.NotEqual(t, changedMessageID, changedDescriptionID)
}

func TestGenerateID_RequiresDefaultMessage(t *testing.T) {
	_, err := generateID(domain.MessageDescriptor{Description: "orphaned"})
	assert.ErrorIs(t, err, ErrMissingDefaultMessage)
}
