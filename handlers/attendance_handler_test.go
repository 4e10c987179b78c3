package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
	"dayflow/pkg/paseto"
)

type fakeLedger struct {
	checkInDate   string
	checkInClock  string
	checkOutDate  string
	checkOutClock string
	checkOutFound bool
}

func (f *fakeLedger) CheckIn(_ context.Context, user *models.User, date, checkInTime string) (*models.AttendanceRecord, error) {
	f.checkInDate = date
	f.checkInClock = checkInTime
	return &models.AttendanceRecord{EmployeeID: user.ID.Hex(), Date: date, CheckInTime: checkInTime, Status: models.StatusPresent}, nil
}

func (f *fakeLedger) CheckOut(_ context.Context, employeeID, date, checkOutTime string) (*models.AttendanceRecord, error) {
	f.checkOutDate = date
	f.checkOutClock = checkOutTime
	if !f.checkOutFound {
		return nil, nil
	}
	return &models.AttendanceRecord{EmployeeID: employeeID, Date: date, CheckOutTime: checkOutTime}, nil
}

func (f *fakeLedger) FindByEmployee(context.Context, string) ([]models.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeLedger) FindByWeek(context.Context, int, int, string) ([]models.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeLedger) FindByMonth(context.Context, int, int, string) ([]models.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeLedger) WeeklySummary(context.Context, int, int, string) (*models.WeeklyAttendanceSummary, error) {
	return nil, nil
}
func (f *fakeLedger) MonthlySummary(context.Context, int, int, string) (*models.MonthlyAttendanceSummary, error) {
	return nil, nil
}
func (f *fakeLedger) GetTodayAttendance(context.Context, string) ([]models.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeLedger) ActiveClockIns(context.Context) ([]models.ActiveClockIn, error) {
	return nil, nil
}
func (f *fakeLedger) HasActiveClockIn(context.Context, string) (*models.ActiveClockIn, error) {
	return nil, nil
}
func (f *fakeLedger) ExpireStaleClockIns(context.Context) (int64, error) { return 0, nil }
func (f *fakeLedger) Subscribe(func()) int                               { return 0 }
func (f *fakeLedger) Unsubscribe(int)                                    {}

type fakeDirectory struct {
	user *models.User
}

func (f *fakeDirectory) FindUserByID(context.Context, primitive.ObjectID) (*models.User, error) {
	return f.user, nil
}

func newAttendanceTestApp(ledger *fakeLedger, dir *fakeDirectory, claims *paseto.Claims) *fiber.App {
	handler := NewAttendanceHandler(ledger, dir)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", claims)
		return c.Next()
	})
	app.Post("/check-in", handler.CheckIn)
	app.Post("/check-out", handler.CheckOut)
	return app
}

func clockRequest(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCheckInUsesServerClock(t *testing.T) {
	userID := primitive.NewObjectID()
	ledger := &fakeLedger{}
	dir := &fakeDirectory{user: &models.User{ID: userID, Name: "John Smith"}}
	app := newAttendanceTestApp(ledger, dir, &paseto.Claims{UserID: userID, Role: "employee"})

	// A body naming a past date and time must not reach the ledger.
	before := time.Now().Format("15:04")
	resp := clockRequest(t, app, "/check-in", `{"date":"2020-01-01","time":"01:23"}`)
	after := time.Now().Format("15:04")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, time.Now().Format("2006-01-02"), ledger.checkInDate)
	assert.NotEqual(t, "2020-01-01", ledger.checkInDate)
	assert.Contains(t, []string{before, after}, ledger.checkInClock)
}

func TestCheckOutUsesServerClock(t *testing.T) {
	userID := primitive.NewObjectID()
	ledger := &fakeLedger{checkOutFound: true}
	app := newAttendanceTestApp(ledger, &fakeDirectory{}, &paseto.Claims{UserID: userID, Role: "employee"})

	before := time.Now().Format("15:04")
	resp := clockRequest(t, app, "/check-out", `{"date":"2026-08-01","time":"09:00"}`)
	after := time.Now().Format("15:04")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, time.Now().Format("2006-01-02"), ledger.checkOutDate)
	assert.Contains(t, []string{before, after}, ledger.checkOutClock)
}

func TestCheckOutWithoutOpenRecord(t *testing.T) {
	userID := primitive.NewObjectID()
	ledger := &fakeLedger{checkOutFound: false}
	app := newAttendanceTestApp(ledger, &fakeDirectory{}, &paseto.Claims{UserID: userID, Role: "employee"})

	resp := clockRequest(t, app, "/check-out", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
