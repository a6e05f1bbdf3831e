package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/orderstack/order-system/notification-service/application"
	"github.com/orderstack/order-system/notification-service/handlers"
	"github.com/orderstack/order-system/notification-service/infrastructure"
	"github.com/orderstack/order-system/shared/events"
	sharedinfra "github.com/orderstack/order-system/shared/infrastructure"
	"github.com/orderstack/order-system/shared/telemetry"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	NotificationRepository *infrastructure.PostgresNotificationRepository

	// Use Cases
	SendNotification        *application.SendNotification
	SendFailureNotification *application.SendFailureNotification

	// HTTP Handlers
	NotificationHandlers *handlers.NotificationHandlers

	// Event Handlers
	SagaEventHandlers *handlers.SagaEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if config.Telemetry.Enabled {
		telConfig := telemetry.NotificationServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	// Notification events are informational; a missing broker does not
	// stop the service.
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		log.Printf("Failed to create SNS publisher, notification events disabled: %v", err)
	} else {
		deps.EventPublisher = eventPublisher
	}

	var publisher events.Publisher
	if deps.EventPublisher != nil {
		publisher = deps.EventPublisher
	}

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.NotificationRepository = infrastructure.NewPostgresNotificationRepository(db)

	// Initialize use cases
	deps.SendNotification = application.NewSendNotification(deps.NotificationRepository, publisher)
	deps.SendFailureNotification = application.NewSendFailureNotification(deps.SendNotification)

	// Initialize handlers
	deps.NotificationHandlers = handlers.NewNotificationHandlers(
		deps.SendNotification,
		deps.SendFailureNotification,
	)
	deps.SagaEventHandlers = handlers.NewSagaEventHandlers(deps.SendNotification)

	return deps, nil
}

// StartEventSubscription begins consuming saga lifecycle events
func (d *Dependencies) StartEventSubscription(ctx context.Context) error {
	return d.EventSubscriber.Subscribe(ctx, "", d.SagaEventHandlers)
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			return fmt.Errorf("failed to close event subscriber: %w", err)
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	return nil
}
