package events

import "time"

const PayrollLifecycleTopic = "hr.payroll.lifecycle.v1"

type PayrollProcessedEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	NetSalary  int64     `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
