package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkingDaysInMonth(t *testing.T) {
	// February 2026 starts on a Sunday and has exactly four full work weeks.
	assert.Equal(t, 20, WorkingDaysInMonth(2, 2026))

	assert.Equal(t, 22, WorkingDaysInMonth(9, 2026))
	assert.Equal(t, 22, WorkingDaysInMonth(6, 2026))
	assert.Equal(t, 22, WorkingDaysInMonth(1, 2026))
}
