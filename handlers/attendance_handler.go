package handlers

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
	"dayflow/pkg/paseto"
)

// UserDirectory is the slice of the user repository the attendance and
// leave handlers need.
type UserDirectory interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AttendanceLedger is the repository surface the attendance handlers are
// written against; *repository.AttendanceRepository satisfies it.
type AttendanceLedger interface {
	CheckIn(ctx context.Context, user *models.User, date, checkInTime string) (*models.AttendanceRecord, error)
	CheckOut(ctx context.Context, employeeID, date, checkOutTime string) (*models.AttendanceRecord, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error)
	FindByWeek(ctx context.Context, weekNumber, year int, employeeID string) ([]models.AttendanceRecord, error)
	FindByMonth(ctx context.Context, month, year int, employeeID string) ([]models.AttendanceRecord, error)
	WeeklySummary(ctx context.Context, weekNumber, year int, employeeID string) (*models.WeeklyAttendanceSummary, error)
	MonthlySummary(ctx context.Context, month, year int, employeeID string) (*models.MonthlyAttendanceSummary, error)
	GetTodayAttendance(ctx context.Context, date string) ([]models.AttendanceRecord, error)
	ActiveClockIns(ctx context.Context) ([]models.ActiveClockIn, error)
	HasActiveClockIn(ctx context.Context, employeeID string) (*models.ActiveClockIn, error)
	ExpireStaleClockIns(ctx context.Context) (int64, error)
	Subscribe(fn func()) int
	Unsubscribe(id int)
}

type AttendanceHandler struct {
	attendanceRepo AttendanceLedger
	userRepo       UserDirectory
}

func NewAttendanceHandler(attendanceRepo AttendanceLedger, userRepo UserDirectory) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// serverClock stamps the mutation with the server's wall clock. Check-in
// and check-out never trust a client-supplied time; the ledger records
// when the request arrived, minute resolution.
func serverClock() (date, clock string) {
	now := time.Now()
	return now.Format("2006-01-02"), now.Format("15:04")
}

func (h *AttendanceHandler) currentUser(c *fiber.Ctx, ctx context.Context) (*models.User, error) {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid or missing token")
	}
	user, err := h.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

// CheckIn godoc
// @Summary Clock in for the day
// @Description Creates or overwrites the caller's record for today, stamped with the server clock, and raises the open clock-in marker.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.AttendanceRecord
// @Router /api/v1/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	date, clock := serverClock()

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.currentUser(c, ctx)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.attendanceRepo.CheckIn(ctx, user, date, clock)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check in", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Checked in successfully", "record": record})
}

// CheckOut godoc
// @Summary Clock out for the day
// @Description Closes the caller's record for today, stamped with the server clock, deriving worked hours and the day status.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AttendanceRecord
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	date, clock := serverClock()

	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	record, err := h.attendanceRepo.CheckOut(ctx, claims.UserID.Hex(), date, clock)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check out", "details": err.Error()})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No check-in found for today"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Checked out successfully", "record": record})
}

// MyStatus godoc
// @Summary The caller's open clock-in, if any
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ActiveClockIn
// @Router /api/v1/attendance/status [get]
func (h *AttendanceHandler) MyStatus(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	marker, err := h.attendanceRepo.HasActiveClockIn(ctx, claims.UserID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check clock-in status", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"checked_in": marker != nil,
		"clock_in":   marker,
	})
}

// MyHistory godoc
// @Summary The caller's full attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceRecord
// @Router /api/v1/attendance/my [get]
func (h *AttendanceHandler) MyHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	records, err := h.attendanceRepo.FindByEmployee(ctx, claims.UserID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list attendance history", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"records": records, "total": len(records)})
}

// weekQuery pulls week/year from the query string, defaulting to the
// current week.
func weekQuery(c *fiber.Ctx) (int, int, error) {
	now := time.Now()
	week, err := strconv.Atoi(c.Query("week", strconv.Itoa(models.WeekNumber(now))))
	if err != nil || week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("week must be a number between 1 and 53")
	}
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number")
	}
	return week, year, nil
}

func monthQuery(c *fiber.Ctx) (int, int, error) {
	now := time.Now()
	month, err := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be a number between 1 and 12")
	}
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number")
	}
	return month, year, nil
}

// ByWeek godoc
// @Summary Attendance records for one week
// @Description Admins see the whole company; an employee_id query narrows to one person.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param week query int false "ISO week number"
// @Param year query int false "Year"
// @Param employee_id query string false "Employee ID"
// @Success 200 {array} models.AttendanceRecord
// @Router /api/v1/attendance/week [get]
func (h *AttendanceHandler) ByWeek(c *fiber.Ctx) error {
	week, year, err := weekQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	records, err := h.attendanceRepo.FindByWeek(ctx, week, year, c.Query("employee_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query attendance", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"records": records, "total": len(records)})
}

// ByMonth godoc
// @Summary Attendance records for one month
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param employee_id query string false "Employee ID"
// @Success 200 {array} models.AttendanceRecord
// @Router /api/v1/attendance/month [get]
func (h *AttendanceHandler) ByMonth(c *fiber.Ctx) error {
	month, year, err := monthQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	records, err := h.attendanceRepo.FindByMonth(ctx, month, year, c.Query("employee_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to query attendance", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"records": records, "total": len(records)})
}

// WeeklySummary godoc
// @Summary One employee's aggregated week
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param week query int false "ISO week number"
// @Param year query int false "Year"
// @Param employee_id query string false "Employee ID (defaults to the caller)"
// @Success 200 {object} models.WeeklyAttendanceSummary
// @Router /api/v1/attendance/summary/week [get]
func (h *AttendanceHandler) WeeklySummary(c *fiber.Ctx) error {
	week, year, err := weekQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	employeeID, err := h.summaryTarget(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.attendanceRepo.WeeklySummary(ctx, week, year, employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary", "details": err.Error()})
	}
	if summary == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": nil, "message": "No attendance records for this week"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": summary})
}

// MonthlySummary godoc
// @Summary One employee's aggregated month
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param employee_id query string false "Employee ID (defaults to the caller)"
// @Success 200 {object} models.MonthlyAttendanceSummary
// @Router /api/v1/attendance/summary/month [get]
func (h *AttendanceHandler) MonthlySummary(c *fiber.Ctx) error {
	month, year, err := monthQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	employeeID, err := h.summaryTarget(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.attendanceRepo.MonthlySummary(ctx, month, year, employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary", "details": err.Error()})
	}
	if summary == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": nil, "message": "No attendance records for this month"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": summary})
}

// summaryTarget resolves which employee a summary is about: admins may name
// anyone, everyone else gets their own.
func (h *AttendanceHandler) summaryTarget(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return "", fmt.Errorf("invalid or missing token")
	}

	target := c.Query("employee_id")
	if target == "" {
		return claims.UserID.Hex(), nil
	}
	if claims.Role != "admin" && target != claims.UserID.Hex() {
		return "", fmt.Errorf("access denied")
	}
	return target, nil
}

// Today godoc
// @Summary Today's company-wide attendance
// @Description Sweeps expired clock-ins first, then lists today's records.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceRecord
// @Router /api/v1/admin/attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.attendanceRepo.ExpireStaleClockIns(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to expire stale clock-ins", "details": err.Error()})
	}

	today := time.Now().Format("2006-01-02")
	records, err := h.attendanceRepo.GetTodayAttendance(ctx, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list today's attendance", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"date": today, "records": records, "total": len(records)})
}

// ActiveClockIns godoc
// @Summary Everyone currently clocked in
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ActiveClockIn
// @Router /api/v1/admin/attendance/active [get]
func (h *AttendanceHandler) ActiveClockIns(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	markers, err := h.attendanceRepo.ActiveClockIns(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list active clock-ins", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"active": markers, "total": len(markers)})
}

// Stream godoc
// @Summary Server-sent events stream of ledger changes
// @Description Emits an event after every check-in, check-out or leave write so dashboards can refetch.
// @Tags Attendance
// @Produce text/event-stream
// @Security BearerAuth
// @Router /api/v1/attendance/stream [get]
func (h *AttendanceHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// The callback fires on the mutating request's goroutine; never block it.
	changes := make(chan struct{}, 1)
	subID := h.attendanceRepo.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.attendanceRepo.Unsubscribe(subID)

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-changes:
				fmt.Fprintf(w, "event: attendance\ndata: {\"changed_at\":%q}\n\n", time.Now().Format(time.RFC3339))
			case <-keepalive.C:
				fmt.Fprintf(w, ": keepalive\n\n")
			}
			if err := w.Flush(); err != nil {
				// Client went away.
				return
			}
		}
	}))

	return nil
}
