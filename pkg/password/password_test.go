package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hashed, err := HashPassword("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hashed)

	assert.True(t, CheckPasswordHash("Password123", hashed))
	assert.False(t, CheckPasswordHash("password123", hashed))
	assert.False(t, CheckPasswordHash("", hashed))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("Password123")
	require.NoError(t, err)
	second, err := HashPassword("Password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
