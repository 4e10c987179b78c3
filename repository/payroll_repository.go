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

type PayrollRepository struct {
	collection        *mongo.Collection
	historyCollection *mongo.Collection
	userRepo          *UserRepository
}

func NewPayrollRepository(userRepo *UserRepository) *PayrollRepository {
	return &PayrollRepository{
		collection:        config.GetCollection(config.PayrollCollection),
		historyCollection: config.GetCollection(config.SalaryStructureCollection),
		userRepo:          userRepo,
	}
}

// GetAllEmployeePayroll returns one row per employee. Employees without a
// payroll record get a zeroed "NA" row built from the directory, so the
// payroll table always covers the whole company.
func (r *PayrollRepository) GetAllEmployeePayroll(ctx context.Context) ([]models.PayrollRecord, error) {
	users, err := r.userRepo.FindAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.PayrollRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode payroll records: %w", err)
	}

	byEmployee := make(map[string]models.PayrollRecord, len(records))
	for _, record := range records {
		byEmployee[record.EmployeeID] = record
	}

	result := make([]models.PayrollRecord, 0, len(users))
	for _, user := range users {
		if record, ok := byEmployee[user.ID.Hex()]; ok {
			result = append(result, record)
			continue
		}
		result = append(result, naPayrollRow(&user))
	}
	return result, nil
}

func naPayrollRow(user *models.User) models.PayrollRecord {
	return models.PayrollRecord{
		EmployeeID:   user.ID.Hex(),
		EmployeeName: user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Department:   user.Department,
		Position:     user.Position,
		HireDate:     user.JoinDate,
		Status:       "NA",
	}
}

// GetEmployeePayroll returns the employee's payroll record, or the "NA"
// fallback row when none exists yet. Returns (nil, nil) for an unknown
// employee.
func (r *PayrollRepository) GetEmployeePayroll(ctx context.Context, employeeID string) (*models.PayrollRecord, error) {
	var record models.PayrollRecord

	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&record)
	if err == nil {
		return &record, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to find payroll record: %w", err)
	}

	objectID, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee ID: %w", err)
	}
	user, err := r.userRepo.FindUserByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	fallback := naPayrollRow(user)
	return &fallback, nil
}

// UpdateSalaryStructure upserts the employee's structure, recomputes gross
// and net from the stored deductions, and appends a history row. Returns
// (nil, nil) for an unknown employee.
func (r *PayrollRepository) UpdateSalaryStructure(ctx context.Context, employeeID string, structure models.SalaryStructure, updatedBy string) (*models.PayrollRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee ID: %w", err)
	}
	user, err := r.userRepo.FindUserByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	var existing models.PayrollRecord
	err = r.collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&existing)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to find payroll record: %w", err)
	}

	now := time.Now()
	record := models.PayrollRecord{
		EmployeeID:      employeeID,
		EmployeeName:    user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		Department:      user.Department,
		Position:        user.Position,
		HireDate:        user.JoinDate,
		SalaryStructure: structure,
		Deductions:      existing.Deductions,
		Gross:           structure.Total(),
		Status:          "updated",
		ProcessedBy:     updatedBy,
		LastUpdated:     now,
	}
	record.Net = record.Gross - record.Deductions.Total()

	filter := bson.M{"employee_id": employeeID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return nil, fmt.Errorf("failed to update salary structure: %w", err)
	}

	history := models.SalaryStructureHistory{
		ID:            primitive.NewObjectID(),
		EmployeeID:    employeeID,
		Structure:     structure,
		TotalGross:    record.Gross,
		EffectiveDate: now.Format("2006-01-02"),
		UpdatedBy:     updatedBy,
		CreatedAt:     now,
	}
	if _, err := r.historyCollection.InsertOne(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to append salary history: %w", err)
	}

	return &record, nil
}

// SalaryHistory lists the employee's structure changes, newest first.
func (r *PayrollRepository) SalaryHistory(ctx context.Context, employeeID string) ([]models.SalaryStructureHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.historyCollection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}
	defer cursor.Close(ctx)

	var history []models.SalaryStructureHistory
	if err = cursor.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("failed to decode salary history: %w", err)
	}

	if len(history) == 0 {
		return []models.SalaryStructureHistory{}, nil
	}
	return history, nil
}
