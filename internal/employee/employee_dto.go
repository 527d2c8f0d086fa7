package employee

type CreateEmployeeRequest struct {
	UserID       *string `json:"user_id" binding:"omitempty,uuid"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	PhoneNumber  string  `json:"phone_number"`
	Address      string  `json:"address"`
	HireDate     string  `json:"hire_date" binding:"required"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	JobRoleID    *string `json:"job_role_id" binding:"omitempty,uuid"`
	LeaveBalance *int    `json:"leave_balance" binding:"omitempty,min=0"`
}

type UpdateEmployeeRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	PhoneNumber  string  `json:"phone_number"`
	Address      string  `json:"address"`
	HireDate     string  `json:"hire_date" binding:"required"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	JobRoleID    *string `json:"job_role_id" binding:"omitempty,uuid"`
}

type CreditLeaveRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number,omitempty"`
	Address        string  `json:"address,omitempty"`
	HireDate       string  `json:"hire_date"`
	DepartmentID   *string `json:"department_id,omitempty"`
	JobRoleID      *string `json:"job_role_id,omitempty"`
	LeaveBalance   int     `json:"leave_balance"`
}

type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
