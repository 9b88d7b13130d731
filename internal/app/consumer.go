package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-nomina/internal/bootstrap"
	"go-nomina/internal/employee"
	"go-nomina/internal/events"
	"go-nomina/internal/hours"
	"go-nomina/internal/messaging/kafka"
	"go-nomina/internal/messaging/kafka/consumer"
	"go-nomina/internal/payroll"
	"go-nomina/internal/settings"
	"go-nomina/internal/shared/connection"
	"go-nomina/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	settingsService := settings.NewService(sqlDB, settings.NewRepository(gormDB), redisClient)
	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		hours.NewRepository(gormDB),
		settingsService,
		counter.NewRepository(gormDB),
		kafka.NewOutboxRepository(sqlDB),
		payroll.NewPayslipWriter(os.Getenv("PAYSLIP_DIR")),
	)

	payslipReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayslipRequestedTopic,
		GroupID:        "go-nomina-payslips",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payslipReader.Close()

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "go-nomina-employee-audit",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayslipRequested(ctx, payslipReader, payrollService, logger)
	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, bootstrap.NewStdoutAuditLogger(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
