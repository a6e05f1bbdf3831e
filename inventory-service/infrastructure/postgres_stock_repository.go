package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderstack/order-system/inventory-service/domain"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresStockRepository implements StockRepository using PostgreSQL
type PostgresStockRepository struct {
	db *sqlx.DB
}

// NewPostgresStockRepository creates a new PostgresStockRepository
func NewPostgresStockRepository(db *sqlx.DB) *PostgresStockRepository {
	return &PostgresStockRepository{db: db}
}

// postgresStockItem represents a stock item in database
type postgresStockItem struct {
	ID                string     `db:"id"`
	ProductID         string     `db:"product_id"`
	ProductName       string     `db:"product_name"`
	AvailableQuantity int        `db:"available_quantity"`
	ReservedQuantity  int        `db:"reserved_quantity"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
	Version           int        `db:"version"`
}

// Save persists the stock item. Insert and update are distinguished by
// the version: a freshly created aggregate is at version 1.
func (r *PostgresStockRepository) Save(ctx context.Context, item *domain.StockItem) error {
	if item.Version.Value == 1 {
		return r.insertStockItem(ctx, item)
	}
	return r.updateStockItem(ctx, item)
}

func (r *PostgresStockRepository) insertStockItem(ctx context.Context, item *domain.StockItem) error {
	query := `
		INSERT INTO stock_items (
			id, product_id, product_name, available_quantity,
			reserved_quantity, created_at, updated_at, version
		) VALUES (
			:id, :product_id, :product_name, :available_quantity,
			:reserved_quantity, :created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(item))
	if err != nil {
		return errors.Wrap(err, "failed to insert stock item")
	}

	return nil
}

func (r *PostgresStockRepository) updateStockItem(ctx context.Context, item *domain.StockItem) error {
	query := `
		UPDATE stock_items
		SET available_quantity = :available_quantity,
			reserved_quantity = :reserved_quantity,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":                 item.ID.String(),
		"available_quantity": item.AvailableQuantity,
		"reserved_quantity":  item.ReservedQuantity,
		"updated_at":         item.Timestamps.UpdatedAt,
		"version":            item.Version.Value,
		"old_version":        item.Version.Value - 1, // Optimistic locking
	})

	if err != nil {
		return errors.Wrap(err, "failed to update stock item")
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return errors.New("stock item was modified concurrently")
	}

	return nil
}

// FindByProductID finds a stock item by product ID
func (r *PostgresStockRepository) FindByProductID(ctx context.Context, productID string) (*domain.StockItem, error) {
	query := `
		SELECT id, product_id, product_name, available_quantity,
			   reserved_quantity, created_at, updated_at, deleted_at, version
		FROM stock_items
		WHERE product_id = $1 AND deleted_at IS NULL`

	var pgItem postgresStockItem
	err := r.db.GetContext(ctx, &pgItem, query, productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to find stock item")
	}

	return r.toDomain(&pgItem), nil
}

// FindAll returns all stock items
func (r *PostgresStockRepository) FindAll(ctx context.Context) ([]*domain.StockItem, error) {
	query := `
		SELECT id, product_id, product_name, available_quantity,
			   reserved_quantity, created_at, updated_at, deleted_at, version
		FROM stock_items
		WHERE deleted_at IS NULL
		ORDER BY product_id`

	var pgItems []postgresStockItem
	err := r.db.SelectContext(ctx, &pgItems, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stock items")
	}

	items := make([]*domain.StockItem, 0, len(pgItems))
	for i := range pgItems {
		items = append(items, r.toDomain(&pgItems[i]))
	}

	return items, nil
}

// Seed inserts the initial catalog if the products are not present yet
func (r *PostgresStockRepository) Seed(ctx context.Context, items []*domain.StockItem) error {
	query := `
		INSERT INTO stock_items (
			id, product_id, product_name, available_quantity,
			reserved_quantity, created_at, updated_at, version
		) VALUES (
			:id, :product_id, :product_name, :available_quantity,
			:reserved_quantity, :created_at, :updated_at, :version
		)
		ON CONFLICT (product_id) DO NOTHING`

	for _, item := range items {
		if _, err := r.db.NamedExecContext(ctx, query, r.toPostgres(item)); err != nil {
			return errors.Wrapf(err, "failed to seed product %s", item.ProductID)
		}
	}

	return nil
}

func (r *PostgresStockRepository) toPostgres(item *domain.StockItem) *postgresStockItem {
	return &postgresStockItem{
		ID:                item.ID.String(),
		ProductID:         item.ProductID,
		ProductName:       item.ProductName,
		AvailableQuantity: item.AvailableQuantity,
		ReservedQuantity:  item.ReservedQuantity,
		CreatedAt:         item.Timestamps.CreatedAt,
		UpdatedAt:         item.Timestamps.UpdatedAt,
		DeletedAt:         item.Timestamps.DeletedAt,
		Version:           item.Version.Value,
	}
}

func (r *PostgresStockRepository) toDomain(pgItem *postgresStockItem) *domain.StockItem {
	return &domain.StockItem{
		ID:                models.ID(pgItem.ID),
		ProductID:         pgItem.ProductID,
		ProductName:       pgItem.ProductName,
		AvailableQuantity: pgItem.AvailableQuantity,
		ReservedQuantity:  pgItem.ReservedQuantity,
		Timestamps: models.Timestamps{
			CreatedAt: pgItem.CreatedAt,
			UpdatedAt: pgItem.UpdatedAt,
			DeletedAt: pgItem.DeletedAt,
		},
		Version: models.Version{Value: pgItem.Version},
	}
}
