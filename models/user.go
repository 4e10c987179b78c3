package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeCode string             `json:"employee_code" bson:"employee_code,omitempty"`
	Name         string             `json:"name" bson:"name,omitempty"`
	Email        string             `json:"email" bson:"email,omitempty"`
	Password     string             `json:"-" bson:"password,omitempty"`
	Role         string             `json:"role" bson:"role,omitempty"`
	Position     string             `json:"position" bson:"position,omitempty"`
	Department   string             `json:"department" bson:"department,omitempty"`
	Phone        string             `json:"phone" bson:"phone,omitempty"`
	JoinDate     string             `json:"join_date" bson:"join_date,omitempty"`
	Status       string             `json:"status" bson:"status,omitempty"`
	Address      string             `json:"address" bson:"address,omitempty"`
	IsFirstLogin bool               `json:"is_first_login" bson:"isFirstLogin,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserRegisterPayload struct {
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Address    string `json:"address" validate:"omitempty,min=5,max=255"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdatePayload struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Address    string `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type ResetPasswordPayload struct {
	Email       string `json:"email" validate:"required,email"`
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type DepartmentCount struct {
	Department string `bson:"_id" json:"department"`
	Count      int64  `bson:"count" json:"count"`
}

type DashboardStats struct {
	TotalEmployees         int64             `json:"total_employees"`
	ActiveEmployees        int64             `json:"active_employees"`
	CheckedInToday         int64             `json:"checked_in_today"`
	PendingLeaveRequests   int64             `json:"pending_leave_requests"`
	TotalDepartments       int64             `json:"total_departments"`
	DepartmentDistribution []DepartmentCount `json:"department_distribution"`
}
