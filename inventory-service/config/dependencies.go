package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/orderstack/order-system/inventory-service/application"
	"github.com/orderstack/order-system/inventory-service/domain"
	"github.com/orderstack/order-system/inventory-service/handlers"
	"github.com/orderstack/order-system/inventory-service/infrastructure"
	"github.com/orderstack/order-system/shared/events"
	sharedinfra "github.com/orderstack/order-system/shared/infrastructure"
	"github.com/orderstack/order-system/shared/telemetry"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	StockRepository *infrastructure.PostgresStockRepository

	// Use Cases
	CheckStock   *application.CheckStock
	ReserveItems *application.ReserveItems
	ReleaseItems *application.ReleaseItems

	// HTTP Handlers
	InventoryHandlers *handlers.InventoryHandlers

	// Infrastructure
	EventPublisher *sharedinfra.SNSPublisherAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if config.Telemetry.Enabled {
		telConfig := telemetry.InventoryServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
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

	// Stock events are informational; a missing broker does not stop
	// the service.
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		log.Printf("Failed to create SNS publisher, stock events disabled: %v", err)
	} else {
		deps.EventPublisher = eventPublisher
	}

	var publisher events.Publisher
	if deps.EventPublisher != nil {
		publisher = deps.EventPublisher
	}

	// Initialize repositories
	deps.StockRepository = infrastructure.NewPostgresStockRepository(db)

	if config.SeedCatalog {
		if err := seedCatalog(ctx, deps.StockRepository); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// Initialize use cases
	deps.CheckStock = application.NewCheckStock(deps.StockRepository)
	deps.ReserveItems = application.NewReserveItems(deps.StockRepository, publisher)
	deps.ReleaseItems = application.NewReleaseItems(deps.StockRepository, publisher)

	// Initialize handlers
	deps.InventoryHandlers = handlers.NewInventoryHandlers(
		deps.CheckStock,
		deps.ReserveItems,
		deps.ReleaseItems,
	)

	return deps, nil
}

// seedCatalog loads the starter products used by local environments
func seedCatalog(ctx context.Context, repo *infrastructure.PostgresStockRepository) error {
	catalog := []struct {
		productID string
		name      string
		quantity  int
	}{
		{"PROD1", "Product One", 100},
		{"product-1", "Product 1", 100},
		{"product-2", "Product 2", 100},
		{"product-3", "Product 3", 100},
	}

	items := make([]*domain.StockItem, 0, len(catalog))
	for _, entry := range catalog {
		item, err := domain.NewStockItem(entry.productID, entry.name, entry.quantity)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	return repo.Seed(ctx, items)
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
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
