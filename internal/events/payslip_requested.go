package events

import "time"

const PayslipRequestedTopic = "nomina.payroll.payslip.requested.v1"

type PayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	BatchID     string    `json:"batch_id"`
	EntryID     string    `json:"entry_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
