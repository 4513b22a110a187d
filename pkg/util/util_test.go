package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandStr(t *testing.T) {
	s := RandStr(10)
	assert.Len(t, s, 10)

	for _, r := range s {
		assert.Contains(t, charset, string(r))
	}
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := GenerateToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
