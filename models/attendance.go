package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceStatus is the classification of one employee-day.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusHalfDay AttendanceStatus = "Half-day"
	StatusLeave   AttendanceStatus = "Leave"
)

// AttendanceRecord is one entity per (employee, calendar day). The employee
// name, department and position are snapshotted at check-in time and are not
// re-synced when the employee profile later changes. WeekNumber, Month and
// Year are derived once at creation so range queries filter on indexed
// fields instead of parsing dates.
type AttendanceRecord struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID   string             `json:"employee_id" bson:"employee_id"`
	EmployeeName string             `json:"employee_name" bson:"employee_name"`
	Department   string             `json:"department" bson:"department,omitempty"`
	Position     string             `json:"position" bson:"position,omitempty"`
	Date         string             `json:"date" bson:"date"`
	CheckInTime  string             `json:"check_in_time,omitempty" bson:"check_in_time,omitempty"`
	CheckOutTime string             `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	Status       AttendanceStatus   `json:"status" bson:"status"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	TotalHours   *float64           `json:"total_hours,omitempty" bson:"total_hours,omitempty"`
	WeekNumber   int                `json:"week_number" bson:"week_number"`
	Month        int                `json:"month" bson:"month"`
	Year         int                `json:"year" bson:"year"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// ActiveClockIn marks an open (checked-in, not yet checked-out) session for
// one employee. It exists so an open clock-in survives a page reload before
// the day's record is finalized; it is removed on check-out or by the
// 24-hour expiry sweep.
type ActiveClockIn struct {
	EmployeeID   string    `json:"employee_id" bson:"employee_id"`
	EmployeeName string    `json:"employee_name" bson:"employee_name"`
	Date         string    `json:"date" bson:"date"`
	CheckInTime  string    `json:"check_in_time" bson:"check_in_time"`
	Department   string    `json:"department" bson:"department,omitempty"`
	Position     string    `json:"position" bson:"position,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type WeeklyAttendanceSummary struct {
	WeekNumber   int     `json:"week_number"`
	Year         int     `json:"year"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalDays    int     `json:"total_days"`
	PresentDays  int     `json:"present_days"`
	AbsentDays   int     `json:"absent_days"`
	HalfDays     int     `json:"half_days"`
	LeaveDays    int     `json:"leave_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

type MonthlyAttendanceSummary struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalDays    int     `json:"total_days"`
	WorkingDays  int     `json:"working_days"`
	PresentDays  int     `json:"present_days"`
	AbsentDays   int     `json:"absent_days"`
	HalfDays     int     `json:"half_days"`
	LeaveDays    int     `json:"leave_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

// HoursWorked parses two HH:MM wall-clock times and returns the elapsed
// hours, clamped at zero. A check-out on the following calendar day is not
// supported; it nets out through the clamp, not as an error.
func HoursWorked(checkInTime, checkOutTime string) float64 {
	if checkInTime == "" || checkOutTime == "" {
		return 0
	}

	inMinutes, okIn := minutesOfDay(checkInTime)
	outMinutes, okOut := minutesOfDay(checkOutTime)
	if !okIn || !okOut {
		return 0
	}

	totalMinutes := outMinutes - inMinutes
	if totalMinutes < 0 {
		return 0
	}
	return float64(totalMinutes) / 60
}

func minutesOfDay(value string) (int, bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}

// StatusForHours reclassifies a day at check-out time. Exactly zero elapsed
// hours counts as Absent even though a check-in occurred; under four counts
// as Half-day.
func StatusForHours(totalHours float64) AttendanceStatus {
	if totalHours == 0 {
		return StatusAbsent
	}
	if totalHours < 4 {
		return StatusHalfDay
	}
	return StatusPresent
}

// WeekNumber returns the ISO-8601 week number (the week containing the
// year's first Thursday is week 1).
func WeekNumber(date time.Time) int {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	d = d.AddDate(0, 0, 4-dayNum)
	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(d.Sub(yearStart).Hours()/24)/7 + 1
}

// WeekDates returns the Monday and Sunday bounding the given week of the
// given year, on a fixed grid offset from January 1. In years whose Jan 1
// falls on Friday through Sunday this grid sits one week ahead of the ISO
// numbering WeekNumber uses (2027 is such a year); the calendar views
// render the same grid, so both sides of the API stay consistent.
func WeekDates(weekNumber, year int) (time.Time, time.Time) {
	firstDayOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysOffset := (weekNumber - 1) * 7
	startDate := firstDayOfYear.AddDate(0, 0, daysOffset-int(firstDayOfYear.Weekday())+1)
	endDate := startDate.AddDate(0, 0, 6)
	return startDate, endDate
}

// NewWeeklySummary aggregates the given records, which are expected to be
// pre-filtered by (week, year, employee). Returns nil when there are no
// records, distinguishing "no data" from "zero activity".
func NewWeeklySummary(weekNumber, year int, employeeID string, records []AttendanceRecord) *WeeklyAttendanceSummary {
	if len(records) == 0 {
		return nil
	}

	startDate, endDate := WeekDates(weekNumber, year)

	summary := &WeeklyAttendanceSummary{
		WeekNumber:   weekNumber,
		Year:         year,
		StartDate:    startDate.Format("2006-01-02"),
		EndDate:      endDate.Format("2006-01-02"),
		EmployeeID:   employeeID,
		EmployeeName: records[0].EmployeeName,
		TotalDays:    len(records),
	}
	summary.PresentDays, summary.AbsentDays, summary.HalfDays, summary.LeaveDays, summary.TotalHours = tallyRecords(records)
	summary.AverageHours = summary.TotalHours / float64(summary.TotalDays)

	return summary
}

// NewMonthlySummary is the calendar-month analogue of NewWeeklySummary.
// workingDays is the number of business days in the month, supplied by the
// caller.
func NewMonthlySummary(month, year int, employeeID string, records []AttendanceRecord, workingDays int) *MonthlyAttendanceSummary {
	if len(records) == 0 {
		return nil
	}

	summary := &MonthlyAttendanceSummary{
		Month:        month,
		Year:         year,
		EmployeeID:   employeeID,
		EmployeeName: records[0].EmployeeName,
		TotalDays:    len(records),
		WorkingDays:  workingDays,
	}
	summary.PresentDays, summary.AbsentDays, summary.HalfDays, summary.LeaveDays, summary.TotalHours = tallyRecords(records)
	summary.AverageHours = summary.TotalHours / float64(summary.TotalDays)

	return summary
}

func tallyRecords(records []AttendanceRecord) (present, absent, half, leave int, totalHours float64) {
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			present++
		case StatusAbsent:
			absent++
		case StatusHalfDay:
			half++
		case StatusLeave:
			leave++
		}
		if r.TotalHours != nil {
			totalHours += *r.TotalHours
		}
	}
	return present, absent, half, leave, totalHours
}
