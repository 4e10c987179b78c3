package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dayflow/config"
	"dayflow/models"
)

type LeaveRequestRepository struct {
	collection     *mongo.Collection
	attendanceRepo *AttendanceRepository
}

func NewLeaveRequestRepository(attendanceRepo *AttendanceRepository) *LeaveRequestRepository {
	return &LeaveRequestRepository{
		collection:     config.GetCollection(config.LeaveRequestCollection),
		attendanceRepo: attendanceRepo,
	}
}

func (r *LeaveRequestRepository) Create(ctx context.Context, user *models.User, payload *models.LeaveRequestCreatePayload) (*models.LeaveRequest, error) {
	now := time.Now()
	request := &models.LeaveRequest{
		ID:           primitive.NewObjectID(),
		EmployeeID:   user.ID.Hex(),
		EmployeeName: user.Name,
		Department:   user.Department,
		Type:         payload.Type,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
		Days:         models.LeaveDays(payload.StartDate, payload.EndDate),
		Reason:       payload.Reason,
		Status:       "pending",
		AppliedOn:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.collection.InsertOne(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	return request, nil
}

// FindByID returns (nil, nil) when no request has the given id.
func (r *LeaveRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leave request: %w", err)
	}
	return &request, nil
}

// FindByEmployee lists the employee's own requests, newest application
// first.
func (r *LeaveRequestRepository) FindByEmployee(ctx context.Context, employeeID string) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_on", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}

	if len(requests) == 0 {
		return []models.LeaveRequest{}, nil
	}
	return requests, nil
}

// FindPendingWithBalances lists every pending request together with the
// requester's balance for that leave type, so the reviewer sees whether
// approving would overdraw the allowance.
func (r *LeaveRequestRepository) FindPendingWithBalances(ctx context.Context) ([]models.LeaveRequestWithBalance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_on", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": "pending"}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	var pending []models.LeaveRequest
	if err = cursor.All(ctx, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}

	result := make([]models.LeaveRequestWithBalance, 0, len(pending))
	for _, request := range pending {
		balance, err := r.Balance(ctx, request.EmployeeID, request.Type)
		if err != nil {
			return nil, err
		}
		result = append(result, models.LeaveRequestWithBalance{
			LeaveRequest: request,
			Balance:      *balance,
		})
	}
	return result, nil
}

// Balance computes the employee's allowance for one leave type: used counts
// the days of this year's approved requests of that type.
func (r *LeaveRequestRepository) Balance(ctx context.Context, employeeID, leaveType string) (*models.LeaveBalance, error) {
	total := models.LeaveTypeTotals[leaveType]
	yearPrefix := fmt.Sprintf("%d-", time.Now().Year())

	filter := bson.M{
		"employee_id": employeeID,
		"type":        leaveType,
		"status":      "approved",
		"start_date":  bson.M{"$regex": "^" + yearPrefix},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	defer cursor.Close(ctx)

	var approved []models.LeaveRequest
	if err = cursor.All(ctx, &approved); err != nil {
		return nil, fmt.Errorf("failed to decode approved leave: %w", err)
	}

	used := 0
	for _, request := range approved {
		used += request.Days
	}

	return &models.LeaveBalance{
		Total:     total,
		Used:      used,
		Available: total - used,
	}, nil
}

// UpdateStatus decides a pending request. Approval writes a Leave record
// into the attendance ledger for every day of the span, overwriting whatever
// those days previously held.
func (r *LeaveRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, note string, requester *models.User) (*models.LeaveRequest, error) {
	request, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, nil
	}
	if request.Status != "pending" {
		return nil, fmt.Errorf("leave request has already been %s", request.Status)
	}
	// Approval must write the Leave attendance days; a deleted requester
	// would leave the request approved with no ledger records behind it.
	if status == "approved" && requester == nil {
		return nil, fmt.Errorf("cannot approve leave for an employee that no longer exists")
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":     status,
		"note":       note,
		"decided_at": now,
		"updated_at": now,
	}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return nil, fmt.Errorf("failed to update leave request: %w", err)
	}

	request.Status = status
	request.Note = note
	request.DecidedAt = &now
	request.UpdatedAt = now

	if status == "approved" {
		start, err := time.Parse("2006-01-02", request.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid leave start date: %w", err)
		}
		for i := 0; i < request.Days; i++ {
			date := start.AddDate(0, 0, i).Format("2006-01-02")
			if err := r.attendanceRepo.UpsertLeaveDay(ctx, requester, date); err != nil {
				return nil, err
			}
		}
	}

	return request, nil
}

// Decisions lists every decided request, newest decision first.
func (r *LeaveRequestRepository) Decisions(ctx context.Context) ([]models.LeaveRequest, error) {
	filter := bson.M{"status": bson.M{"$in": []string{"approved", "rejected"}}}
	opts := options.Find().SetSort(bson.D{{Key: "decided_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave decisions: %w", err)
	}
	defer cursor.Close(ctx)

	var decisions []models.LeaveRequest
	if err = cursor.All(ctx, &decisions); err != nil {
		return nil, fmt.Errorf("failed to decode leave decisions: %w", err)
	}

	if len(decisions) == 0 {
		return []models.LeaveRequest{}, nil
	}
	return decisions, nil
}

func (r *LeaveRequestRepository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": "pending"})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}
