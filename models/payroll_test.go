package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalaryStructureTotal(t *testing.T) {
	structure := SalaryStructure{Basic: 5000, Housing: 1000, Transport: 300, Medical: 200, Other: 50}
	assert.InDelta(t, 6550.0, structure.Total(), 0.001)

	assert.Equal(t, 0.0, SalaryStructure{}.Total())
}

func TestDeductionsTotal(t *testing.T) {
	deductions := Deductions{Tax: 800, Insurance: 150, ProvidentFund: 250, Other: 20}
	assert.InDelta(t, 1220.0, deductions.Total(), 0.001)
}
