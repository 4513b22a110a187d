package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	hash, err := h.GenerateFromPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := h.VerifyPasswd("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPasswd("secret2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_EmptyHashNeverMatches(t *testing.T) {
	t.Parallel()

	ok, err := NewHasher().VerifyPasswd("", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_CorruptHash(t *testing.T) {
	t.Parallel()

	_, err := NewHasher().VerifyPasswd("secret1", "garbage")
	assert.Error(t, err)
}
