package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSerializer_RoundTrip(t *testing.T) {
	var s cellSerializer
	data := s.Marshal("A1", "=SUM(A2:A3)")

	key, text, err := s.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "A1", key)
	assert.Equal(t, "=SUM(A2:A3)", text)
}

func TestCellSerializer_EmptyText(t *testing.T) {
	var s cellSerializer
	data := s.Marshal("B2", "")

	key, text, err := s.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "B2", key)
	assert.Equal(t, "", text)
}

func TestCellSerializer_UnmarshalRejectsShortRecord(t *testing.T) {
	var s cellSerializer
	_, _, err := s.Unmarshal([]byte{1})
	assert.ErrorIs(t, err, ErrCorruptRecord)
}
