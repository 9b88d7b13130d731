package consumer

import (
	"context"
	"encoding/json"

	"go-nomina/internal/bootstrap"
	"go-nomina/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle records employee creation events on the audit
// trail.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "EMPLOYEE_CREATED",
			Message: "Employee registered",
			Meta: map[string]any{
				"employee_id": event.EmployeeID,
				"company_id":  event.CompanyID,
				"request_id":  event.RequestID,
				"occurred_at": event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}
	}
}
