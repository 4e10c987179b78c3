package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SalaryStructure struct {
	Basic     float64 `json:"basic" bson:"basic"`
	Housing   float64 `json:"housing" bson:"housing"`
	Transport float64 `json:"transport" bson:"transport"`
	Medical   float64 `json:"medical" bson:"medical"`
	Other     float64 `json:"other" bson:"other"`
}

func (s SalaryStructure) Total() float64 {
	return s.Basic + s.Housing + s.Transport + s.Medical + s.Other
}

type Deductions struct {
	Tax           float64 `json:"tax" bson:"tax"`
	Insurance     float64 `json:"insurance" bson:"insurance"`
	ProvidentFund float64 `json:"provident_fund" bson:"provident_fund"`
	Other         float64 `json:"other" bson:"other"`
}

func (d Deductions) Total() float64 {
	return d.Tax + d.Insurance + d.ProvidentFund + d.Other
}

// PayrollRecord carries the employee's salary structure and deduction
// breakdown; Gross and Net are recomputed on every structure update, never
// stored independently of them. Status "NA" marks an employee who has no
// payroll record yet.
type PayrollRecord struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID      string             `json:"employee_id" bson:"employee_id"`
	EmployeeName    string             `json:"employee_name" bson:"employee_name"`
	Email           string             `json:"email" bson:"email,omitempty"`
	Phone           string             `json:"phone" bson:"phone,omitempty"`
	Department      string             `json:"department" bson:"department,omitempty"`
	Position        string             `json:"position" bson:"position,omitempty"`
	HireDate        string             `json:"hire_date" bson:"hire_date,omitempty"`
	SalaryStructure SalaryStructure    `json:"salary_structure" bson:"salary_structure"`
	Deductions      Deductions         `json:"deductions" bson:"deductions"`
	Gross           float64            `json:"gross" bson:"gross"`
	Net             float64            `json:"net" bson:"net"`
	Status          string             `json:"status" bson:"status"`
	PaymentDate     string             `json:"payment_date,omitempty" bson:"payment_date,omitempty"`
	ProcessedBy     string             `json:"processed_by,omitempty" bson:"processed_by,omitempty"`
	LastUpdated     time.Time          `json:"last_updated" bson:"last_updated,omitempty"`
}

// SalaryStructureHistory is one append-only row per structure change.
type SalaryStructureHistory struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID    string             `json:"employee_id" bson:"employee_id"`
	Structure     SalaryStructure    `json:"structure" bson:"structure"`
	TotalGross    float64            `json:"total_gross" bson:"total_gross"`
	EffectiveDate string             `json:"effective_date" bson:"effective_date"`
	UpdatedBy     string             `json:"updated_by" bson:"updated_by"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at,omitempty"`
}

type SalaryStructureUpdatePayload struct {
	Basic     float64 `json:"basic" validate:"min=0"`
	Housing   float64 `json:"housing" validate:"min=0"`
	Transport float64 `json:"transport" validate:"min=0"`
	Medical   float64 `json:"medical" validate:"min=0"`
	Other     float64 `json:"other" validate:"min=0"`
}
