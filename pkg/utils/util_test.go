package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[1-9][0-9]{5}$`, code)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("john@dayflow.io"))
	assert.True(t, IsValidEmail("john.smith+tag@sub.example.com"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("john"))
	assert.False(t, IsValidEmail("john@dayflow"))
	assert.False(t, IsValidEmail("john smith@dayflow.io"))
	assert.False(t, IsValidEmail("@dayflow.io"))
}

func TestFormatEmployeeCode(t *testing.T) {
	assert.Equal(t, "EMP-0001", FormatEmployeeCode(1))
	assert.Equal(t, "EMP-0042", FormatEmployeeCode(42))
	assert.Equal(t, "EMP-12345", FormatEmployeeCode(12345))
}

func TestGenerateBase64Key(t *testing.T) {
	key, err := GenerateBase64Key(32)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	_, err = GenerateBase64Key(16)
	assert.Error(t, err)
}
