package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderstack/order-system/order-service/domain"
	"github.com/orderstack/order-system/shared/events"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// ErrOrderNotFound is returned when the order does not exist
var ErrOrderNotFound = errors.New("order not found")

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order in database
type postgresOrder struct {
	ID                 string          `db:"id"`
	CustomerID         string          `db:"customer_id"`
	TotalAmount        float64         `db:"total_amount"`
	Items              json.RawMessage `db:"items"`
	Status             string          `db:"status"`
	CancellationReason *string         `db:"cancellation_reason"`
	CancelledAt        *time.Time      `db:"cancelled_at"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
	DeletedAt          *time.Time      `db:"deleted_at"`
	Version            int             `db:"version"`
}

// Save saves an order to the database
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	// Process events to determine operation type
	for _, event := range order.Events() {
		switch event.EventType {
		case events.OrderCreatedEvent:
			return r.insertOrder(ctx, order)
		case events.OrderCancelledEvent, events.OrderCompletedEvent:
			return r.updateOrder(ctx, order)
		}
	}
	return r.updateOrder(ctx, order)
}

// insertOrder inserts a new order
func (r *PostgresOrderRepository) insertOrder(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_id, total_amount, items, status,
			cancellation_reason, cancelled_at,
			created_at, updated_at, version
		) VALUES (
			:id, :customer_id, :total_amount, :items, :status,
			:cancellation_reason, :cancelled_at,
			:created_at, :updated_at, :version
		)`

	pgOrder, err := r.toPostgres(order)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, query, pgOrder)
	if err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	return nil
}

// updateOrder updates an existing order
func (r *PostgresOrderRepository) updateOrder(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, cancellation_reason = :cancellation_reason,
			cancelled_at = :cancelled_at, updated_at = :updated_at,
			version = :version
		WHERE id = :id AND version = :old_version`

	var reason *string
	if order.CancellationReason != "" {
		reason = &order.CancellationReason
	}

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":                  order.ID.String(),
		"status":              string(order.Status),
		"cancellation_reason": reason,
		"cancelled_at":        order.CancelledAt,
		"updated_at":          order.Timestamps.UpdatedAt,
		"version":             order.Version.Value,
		"old_version":         order.Version.Value - 1, // Optimistic locking
	})

	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return errors.New("order was modified concurrently")
	}

	return nil
}

// FindByID finds an order by ID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, customer_id, total_amount, items, status,
			   cancellation_reason, cancelled_at,
			   created_at, updated_at, deleted_at, version
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL`

	var pgOrder postgresOrder
	err := r.db.GetContext(ctx, &pgOrder, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	return r.toDomain(&pgOrder)
}

// FindByCustomerID finds orders for a customer
func (r *PostgresOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error) {
	query := `
		SELECT id, customer_id, total_amount, items, status,
			   cancellation_reason, cancelled_at,
			   created_at, updated_at, deleted_at, version
		FROM orders
		WHERE customer_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	var pgOrders []postgresOrder
	err := r.db.SelectContext(ctx, &pgOrders, query, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by customer")
	}

	orders := make([]*domain.Order, 0, len(pgOrders))
	for i := range pgOrders {
		order, err := r.toDomain(&pgOrders[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// toPostgres converts domain order to postgres representation
func (r *PostgresOrderRepository) toPostgres(order *domain.Order) (*postgresOrder, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal order items")
	}

	var reason *string
	if order.CancellationReason != "" {
		reason = &order.CancellationReason
	}

	return &postgresOrder{
		ID:                 order.ID.String(),
		CustomerID:         order.CustomerID,
		TotalAmount:        order.TotalAmount,
		Items:              items,
		Status:             string(order.Status),
		CancellationReason: reason,
		CancelledAt:        order.CancelledAt,
		CreatedAt:          order.Timestamps.CreatedAt,
		UpdatedAt:          order.Timestamps.UpdatedAt,
		DeletedAt:          order.Timestamps.DeletedAt,
		Version:            order.Version.Value,
	}, nil
}

// toDomain converts postgres order to domain order
func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder) (*domain.Order, error) {
	var items []models.OrderItem
	if len(pgOrder.Items) > 0 {
		if err := json.Unmarshal(pgOrder.Items, &items); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal order items")
		}
	}

	var reason string
	if pgOrder.CancellationReason != nil {
		reason = *pgOrder.CancellationReason
	}

	return &domain.Order{
		ID:                 models.ID(pgOrder.ID),
		CustomerID:         pgOrder.CustomerID,
		TotalAmount:        pgOrder.TotalAmount,
		Items:              items,
		Status:             domain.OrderStatus(pgOrder.Status),
		CancellationReason: reason,
		CancelledAt:        pgOrder.CancelledAt,
		Timestamps: models.Timestamps{
			CreatedAt: pgOrder.CreatedAt,
			UpdatedAt: pgOrder.UpdatedAt,
			DeletedAt: pgOrder.DeletedAt,
		},
		Version: models.Version{Value: pgOrder.Version},
	}, nil
}
