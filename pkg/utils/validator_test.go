package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type passwordPayload struct {
	Password string `validate:"required,min=8,hasuppercase"`
}

func TestHasUppercase(t *testing.T) {
	assert.Nil(t, ValidateStruct(passwordPayload{Password: "Password123"}))

	errs := ValidateStruct(passwordPayload{Password: "password123"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "hasuppercase", errs[0].Tag)
	assert.Equal(t, "Password must contain at least one uppercase letter.", errs[0].Msg)
}

type datePayload struct {
	Date string `validate:"omitempty,datetime=2006-01-02,notpastdate,maxfuturemonths=6"`
}

func TestNotPastDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Nil(t, ValidateStruct(datePayload{Date: today}))

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Nil(t, ValidateStruct(datePayload{Date: tomorrow}))

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	errs := ValidateStruct(datePayload{Date: yesterday})
	assert.Len(t, errs, 1)
	assert.Equal(t, "notpastdate", errs[0].Tag)
}

func TestMaxFutureMonths(t *testing.T) {
	nearFuture := time.Now().AddDate(0, 3, 0).Format("2006-01-02")
	assert.Nil(t, ValidateStruct(datePayload{Date: nearFuture}))

	farFuture := time.Now().AddDate(0, 7, 0).Format("2006-01-02")
	errs := ValidateStruct(datePayload{Date: farFuture})
	assert.Len(t, errs, 1)
	assert.Equal(t, "maxfuturemonths", errs[0].Tag)
}

func TestEmptyDateSkipsDateRules(t *testing.T) {
	assert.Nil(t, ValidateStruct(datePayload{}))
}

type rangePayload struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02,gtefield=StartDate"`
}

func TestGtefieldMessage(t *testing.T) {
	errs := ValidateStruct(rangePayload{StartDate: "2026-03-10", EndDate: "2026-03-05"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "End date cannot be before start date.", errs[0].Msg)
}
