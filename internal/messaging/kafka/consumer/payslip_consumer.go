package consumer

import (
	"context"
	"encoding/json"

	"go-nomina/internal/events"
	"go-nomina/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayslipRequested renders payslip PDFs for queued requests. A failed
// generation leaves the message uncommitted so it is retried.
func ConsumePayslipRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip")
	log.Info("payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip consumer stopped")
				return
			}
			log.Error("fetch payslip message failed", zap.Error(err))
			continue
		}

		var event events.PayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payslip_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		path, err := payrollService.GeneratePayslip(ctx, event.CompanyID, event.BatchID, event.EntryID)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("batch_id", event.BatchID),
				zap.String("entry_id", event.EntryID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated",
			zap.String("batch_id", event.BatchID),
			zap.String("entry_id", event.EntryID),
			zap.String("path", path),
		)
	}
}
