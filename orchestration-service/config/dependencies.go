package config

import (
	"context"
	"fmt"
	"log"

	"github.com/orderstack/order-system/orchestration-service/application"
	"github.com/orderstack/order-system/orchestration-service/domain"
	"github.com/orderstack/order-system/orchestration-service/handlers"
	"github.com/orderstack/order-system/orchestration-service/infrastructure"
	"github.com/orderstack/order-system/shared/events"
	sharedinfra "github.com/orderstack/order-system/shared/infrastructure"
	"github.com/orderstack/order-system/shared/telemetry"
)

type Dependencies struct {
	// Registry
	Registry *domain.TransactionRegistry

	// Collaborator clients
	OrderClient        *infrastructure.HTTPOrderClient
	InventoryClient    *infrastructure.HTTPInventoryClient
	NotificationClient *infrastructure.HTTPNotificationClient
	PaymentClient      *infrastructure.HTTPPaymentEndpointClient
	LogClient          *infrastructure.HTTPLogClient

	// Saga components
	PaymentSelector *application.PaymentGatewaySelector
	Compensator     *application.CompensationEngine

	// Use Cases
	ProcessOrder *application.ProcessOrder
	Pay          *application.Pay

	// HTTP Handlers
	OrchestrationHandlers *handlers.OrchestrationHandlers

	// Infrastructure
	EventPublisher *sharedinfra.SNSPublisherAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.OrchestrationServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Saga lifecycle events are best-effort; the orchestrator runs
	// without a publisher if SNS is unavailable.
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		log.Printf("Failed to create SNS publisher, saga events disabled: %v", err)
	} else {
		deps.EventPublisher = eventPublisher
	}

	// Collaborator clients
	deps.OrderClient = infrastructure.NewHTTPOrderClient(config.Collaborators.OrderURL)
	deps.InventoryClient = infrastructure.NewHTTPInventoryClient(config.Collaborators.InventoryURL)
	deps.NotificationClient = infrastructure.NewHTTPNotificationClient(config.Collaborators.NotificationURL)
	deps.PaymentClient = infrastructure.NewHTTPPaymentEndpointClient()
	deps.LogClient = infrastructure.NewHTTPLogClient(config.Collaborators.LoggingURL)

	if len(config.Payment.Endpoints) == 0 {
		return nil, fmt.Errorf("at least one payment endpoint is required")
	}

	// Saga components
	deps.Registry = domain.NewTransactionRegistry()
	deps.PaymentSelector = application.NewPaymentGatewaySelector(
		deps.PaymentClient,
		deps.LogClient,
		config.Payment.Endpoints,
		config.Payment.AttemptsPerEndpoint,
		config.Payment.RetryDelay(),
	)
	deps.Compensator = application.NewCompensationEngine(
		deps.OrderClient,
		deps.InventoryClient,
		deps.NotificationClient,
		deps.LogClient,
	)

	// Use cases. A typed nil adapter must not leak into the publisher
	// interface, the orchestrator checks it against nil.
	var publisher events.Publisher
	if deps.EventPublisher != nil {
		publisher = deps.EventPublisher
	}
	deps.ProcessOrder = application.NewProcessOrder(
		deps.Registry,
		deps.OrderClient,
		deps.InventoryClient,
		deps.PaymentSelector,
		deps.NotificationClient,
		deps.LogClient,
		deps.Compensator,
		publisher,
	)
	deps.Pay = application.NewPay(deps.PaymentSelector)

	// Handlers
	deps.OrchestrationHandlers = handlers.NewOrchestrationHandlers(deps.ProcessOrder, deps.Pay)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	return nil
}
