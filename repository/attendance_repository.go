package repository

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dayflow/config"
	"dayflow/models"
	util "dayflow/pkg/utils"
)

// AttendanceRepository owns the attendance ledger: one record per
// (employee, calendar day), the open clock-in markers, and the change
// fan-out that the live stream endpoint subscribes to.
type AttendanceRepository struct {
	collection       *mongo.Collection
	activeCollection *mongo.Collection

	mu          sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		collection:       config.GetCollection(config.AttendanceCollection),
		activeCollection: config.GetCollection(config.ActiveClockInCollection),
		subscribers:      make(map[int]func()),
	}
}

// Subscribe registers a callback invoked after every ledger mutation and
// returns the id to pass to Unsubscribe. The expiry sweep deliberately does
// not notify.
func (r *AttendanceRepository) Subscribe(fn func()) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSubID++
	r.subscribers[r.nextSubID] = fn
	return r.nextSubID
}

func (r *AttendanceRepository) Unsubscribe(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscribers, id)
}

func (r *AttendanceRepository) notifySubscribers() {
	r.mu.Lock()
	callbacks := make([]func(), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		callbacks = append(callbacks, fn)
	}
	r.mu.Unlock()

	for _, fn := range callbacks {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("attendance subscriber panicked: %v", rec)
				}
			}()
			fn()
		}()
	}
}

// CheckIn records a clock-in for the employee on the given date, replacing
// any existing record for that (employee, date) pair, and raises the open
// clock-in marker.
func (r *AttendanceRepository) CheckIn(ctx context.Context, user *models.User, date, checkInTime string) (*models.AttendanceRecord, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid attendance date %q: %w", date, err)
	}

	now := time.Now()
	record := &models.AttendanceRecord{
		EmployeeID:   user.ID.Hex(),
		EmployeeName: user.Name,
		Department:   user.Department,
		Position:     user.Position,
		Date:         date,
		CheckInTime:  checkInTime,
		Status:       models.StatusPresent,
		WeekNumber:   models.WeekNumber(day),
		Month:        int(day.Month()),
		Year:         day.Year(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	filter := bson.M{"employee_id": record.EmployeeID, "date": date}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	marker := models.ActiveClockIn{
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		Date:         date,
		CheckInTime:  checkInTime,
		Department:   record.Department,
		Position:     record.Position,
		CreatedAt:    now,
	}
	markerFilter := bson.M{"employee_id": record.EmployeeID}
	if _, err := r.activeCollection.ReplaceOne(ctx, markerFilter, marker, opts); err != nil {
		return nil, fmt.Errorf("failed to raise active clock-in: %w", err)
	}

	r.notifySubscribers()
	return record, nil
}

// CheckOut closes the employee's record for the given date, deriving the
// worked hours and the final day status, and clears the open clock-in
// marker. Returns (nil, nil) when there is no checked-in record to close.
func (r *AttendanceRepository) CheckOut(ctx context.Context, employeeID, date, checkOutTime string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	filter := bson.M{"employee_id": employeeID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}
	if record.CheckInTime == "" {
		return nil, nil
	}

	totalHours := models.HoursWorked(record.CheckInTime, checkOutTime)
	record.CheckOutTime = checkOutTime
	record.TotalHours = &totalHours
	record.Status = models.StatusForHours(totalHours)
	record.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"check_out_time": record.CheckOutTime,
		"total_hours":    totalHours,
		"status":         record.Status,
		"updated_at":     record.UpdatedAt,
	}}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("failed to record check-out: %w", err)
	}

	if _, err := r.activeCollection.DeleteOne(ctx, bson.M{"employee_id": employeeID}); err != nil {
		return nil, fmt.Errorf("failed to clear active clock-in: %w", err)
	}

	r.notifySubscribers()
	return &record, nil
}

// UpsertLeaveDay writes a Leave record for one employee-day, replacing
// whatever the day previously held. Used when a leave request is approved.
func (r *AttendanceRepository) UpsertLeaveDay(ctx context.Context, user *models.User, date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid leave date %q: %w", date, err)
	}

	now := time.Now()
	record := &models.AttendanceRecord{
		EmployeeID:   user.ID.Hex(),
		EmployeeName: user.Name,
		Department:   user.Department,
		Position:     user.Position,
		Date:         date,
		Status:       models.StatusLeave,
		WeekNumber:   models.WeekNumber(day),
		Month:        int(day.Month()),
		Year:         day.Year(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	filter := bson.M{"employee_id": record.EmployeeID, "date": date}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to record leave day: %w", err)
	}

	r.notifySubscribers()
	return nil
}

// FindByEmployee returns the employee's full history, newest day first.
func (r *AttendanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}

	if len(records) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return records, nil
}

// FindByWeek filters on the precomputed week_number and year fields. An
// empty employeeID returns the whole company's week.
func (r *AttendanceRepository) FindByWeek(ctx context.Context, weekNumber, year int, employeeID string) ([]models.AttendanceRecord, error) {
	filter := bson.M{"week_number": weekNumber, "year": year}
	if employeeID != "" {
		filter["employee_id"] = employeeID
	}
	return r.findSortedByDate(ctx, filter)
}

// FindByMonth is the calendar-month analogue of FindByWeek.
func (r *AttendanceRepository) FindByMonth(ctx context.Context, month, year int, employeeID string) ([]models.AttendanceRecord, error) {
	filter := bson.M{"month": month, "year": year}
	if employeeID != "" {
		filter["employee_id"] = employeeID
	}
	return r.findSortedByDate(ctx, filter)
}

func (r *AttendanceRepository) findSortedByDate(ctx context.Context, filter bson.M) ([]models.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}

	if len(records) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return records, nil
}

// WeeklySummary aggregates one employee's week. Returns (nil, nil) when the
// employee has no records in that week.
func (r *AttendanceRepository) WeeklySummary(ctx context.Context, weekNumber, year int, employeeID string) (*models.WeeklyAttendanceSummary, error) {
	records, err := r.FindByWeek(ctx, weekNumber, year, employeeID)
	if err != nil {
		return nil, err
	}
	return models.NewWeeklySummary(weekNumber, year, employeeID, records), nil
}

// MonthlySummary aggregates one employee's month. Returns (nil, nil) when
// the employee has no records in that month.
func (r *AttendanceRepository) MonthlySummary(ctx context.Context, month, year int, employeeID string) (*models.MonthlyAttendanceSummary, error) {
	records, err := r.FindByMonth(ctx, month, year, employeeID)
	if err != nil {
		return nil, err
	}
	workingDays := util.WorkingDaysInMonth(month, year)
	return models.NewMonthlySummary(month, year, employeeID, records, workingDays), nil
}

// GetTodayAttendance lists every record for the given date across the
// company. The admin dashboard calls this after the expiry sweep.
func (r *AttendanceRepository) GetTodayAttendance(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "employee_name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}

	if len(records) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return records, nil
}

// ActiveClockIns lists every open (not yet checked-out) session.
func (r *AttendanceRepository) ActiveClockIns(ctx context.Context) ([]models.ActiveClockIn, error) {
	cursor, err := r.activeCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list active clock-ins: %w", err)
	}
	defer cursor.Close(ctx)

	var markers []models.ActiveClockIn
	if err = cursor.All(ctx, &markers); err != nil {
		return nil, fmt.Errorf("failed to decode active clock-ins: %w", err)
	}

	if len(markers) == 0 {
		return []models.ActiveClockIn{}, nil
	}
	return markers, nil
}

// HasActiveClockIn reports whether the employee has an open session.
func (r *AttendanceRepository) HasActiveClockIn(ctx context.Context, employeeID string) (*models.ActiveClockIn, error) {
	var marker models.ActiveClockIn

	err := r.activeCollection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&marker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active clock-in: %w", err)
	}
	return &marker, nil
}

// ExpireStaleClockIns removes markers older than 24 hours. A forgotten
// check-out should not pin an employee as "working" forever. The sweep is
// housekeeping, so it does not notify subscribers.
func (r *AttendanceRepository) ExpireStaleClockIns(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-24 * time.Hour)

	result, err := r.activeCollection.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale clock-ins: %w", err)
	}
	return result.DeletedCount, nil
}

// CountCheckedInToday counts today's records that hold a check-in, for the
// dashboard headline numbers.
func (r *AttendanceRepository) CountCheckedInToday(ctx context.Context, date string) (int64, error) {
	filter := bson.M{"date": date, "check_in_time": bson.M{"$ne": ""}}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's check-ins: %w", err)
	}
	return count, nil
}
