package payroll

import (
	"time"

	"github.com/google/uuid"
)

type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period"`

	Month int `gorm:"not null;uniqueIndex:uq_payroll_employee_period"`
	Year  int `gorm:"not null;uniqueIndex:uq_payroll_employee_period"`

	// Monetary amounts are stored in the smallest currency unit to avoid
	// floating point drift.
	BaseSalary int64 `gorm:"type:bigint;not null;default:0"`
	Allowances int64 `gorm:"type:bigint;not null;default:0"`
	Deductions int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary  int64 `gorm:"type:bigint;not null;default:0"`

	Status        string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	GeneratedDate time.Time  `gorm:"not null"`
	ProcessedDate *time.Time `gorm:"index"`

	PayslipURL         *string
	PayslipGeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
