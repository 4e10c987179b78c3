package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeaveTypeAnnual   = "Annual"
	LeaveTypeSick     = "Sick"
	LeaveTypePersonal = "Personal"
)

// LeaveTypeTotals is the yearly allowance per leave type.
var LeaveTypeTotals = map[string]int{
	LeaveTypeAnnual:   20,
	LeaveTypeSick:     10,
	LeaveTypePersonal: 5,
}

type LeaveRequest struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID   string             `json:"employee_id" bson:"employee_id"`
	EmployeeName string             `json:"employee_name" bson:"employee_name"`
	Department   string             `json:"department" bson:"department,omitempty"`
	Type         string             `json:"type" bson:"type"`
	StartDate    string             `json:"start_date" bson:"start_date"`
	EndDate      string             `json:"end_date" bson:"end_date"`
	Days         int                `json:"days" bson:"days"`
	Reason       string             `json:"reason" bson:"reason"`
	Status       string             `json:"status" bson:"status"`
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	AppliedOn    time.Time          `json:"applied_on" bson:"applied_on"`
	DecidedAt    *time.Time         `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// LeaveBalance is the per-type allowance snapshot shown next to a pending
// request: used counts approved days of the same type in the current year.
type LeaveBalance struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

type LeaveRequestWithBalance struct {
	LeaveRequest `bson:",inline"`
	Balance      LeaveBalance `json:"balance" bson:"-"`
}

type LeaveRequestCreatePayload struct {
	Type      string `json:"type" validate:"required,oneof=Annual Sick Personal"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02,notpastdate,maxfuturemonths=6"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	Reason    string `json:"reason" validate:"required,min=10,max=500"`
}

type LeaveRequestDecisionPayload struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note,omitempty"`
}

// LeaveDays returns the inclusive day count of a YYYY-MM-DD range, or zero
// when either bound fails to parse or the range is inverted.
func LeaveDays(startDate, endDate string) int {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
