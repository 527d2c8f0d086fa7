package payroll

type CreatePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=1"`
	BaseSalary int64  `json:"base_salary" binding:"min=0"`
	Allowances int64  `json:"allowances" binding:"min=0"`
	Deductions int64  `json:"deductions" binding:"min=0"`
}

type PeriodQueryRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1"`
}

type PayrollResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	Month              int     `json:"month"`
	Year               int     `json:"year"`
	BaseSalary         int64   `json:"base_salary"`
	Allowances         int64   `json:"allowances"`
	Deductions         int64   `json:"deductions"`
	NetSalary          int64   `json:"net_salary"`
	Status             string  `json:"status"`
	GeneratedDate      string  `json:"generated_date"`
	ProcessedDate      *string `json:"processed_date,omitempty"`
	PayslipURL         *string `json:"payslip_url,omitempty"`
	PayslipGeneratedAt *string `json:"payslip_generated_at,omitempty"`
}
