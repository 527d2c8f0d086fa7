package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultLeaveBalance = 20

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_employee_user"`
	EmployeeNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FirstName      string     `gorm:"type:varchar(100);not null"`
	LastName       string     `gorm:"type:varchar(100);not null"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	PhoneNumber    string     `gorm:"type:varchar(30)"`
	Address        string     `gorm:"type:text"`
	HireDate       time.Time  `gorm:"type:date;not null"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	JobRoleID    *uuid.UUID `gorm:"type:uuid;index"`

	// Remaining leave days. Mutated only through the Ledger.
	LeaveBalance int `gorm:"type:int;not null;default:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
