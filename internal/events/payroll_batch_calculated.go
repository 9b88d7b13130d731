package events

import "time"

const PayrollBatchCalculatedTopic = "nomina.payroll.batch.calculated.v1"

type PayrollBatchCalculatedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	BatchID       string    `json:"batch_id"`
	CompanyID     string    `json:"company_id"`
	Period        string    `json:"period"`
	EmployeeCount int       `json:"employee_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}
