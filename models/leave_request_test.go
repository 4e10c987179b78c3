package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaveDays(t *testing.T) {
	assert.Equal(t, 1, LeaveDays("2026-03-02", "2026-03-02"))
	assert.Equal(t, 5, LeaveDays("2026-03-02", "2026-03-06"))
	// The span is calendar days, weekends included.
	assert.Equal(t, 8, LeaveDays("2026-03-02", "2026-03-09"))
	// Across a month boundary.
	assert.Equal(t, 4, LeaveDays("2026-02-27", "2026-03-02"))
}

func TestLeaveDaysInvalid(t *testing.T) {
	assert.Equal(t, 0, LeaveDays("2026-03-06", "2026-03-02"))
	assert.Equal(t, 0, LeaveDays("not-a-date", "2026-03-02"))
	assert.Equal(t, 0, LeaveDays("2026-03-02", ""))
}

func TestLeaveTypeTotals(t *testing.T) {
	assert.Equal(t, 20, LeaveTypeTotals[LeaveTypeAnnual])
	assert.Equal(t, 10, LeaveTypeTotals[LeaveTypeSick])
	assert.Equal(t, 5, LeaveTypeTotals[LeaveTypePersonal])
}
