package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderstack/order-system/notification-service/domain"
	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresNotificationRepository implements NotificationRepository using PostgreSQL
type PostgresNotificationRepository struct {
	db *sqlx.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// postgresNotification represents a notification in database
type postgresNotification struct {
	ID          string          `db:"id"`
	RecipientID string          `db:"recipient_id"`
	Type        string          `db:"type"`
	Message     string          `db:"message"`
	Metadata    json.RawMessage `db:"metadata"`
	SentAt      time.Time       `db:"sent_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	Version     int             `db:"version"`
}

// Save inserts a notification. Notifications are append-only.
func (r *PostgresNotificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (
			id, recipient_id, type, message, metadata,
			sent_at, created_at, updated_at, version
		) VALUES (
			:id, :recipient_id, :type, :message, :metadata,
			:sent_at, :created_at, :updated_at, :version
		)`

	pgNotification, err := r.toPostgres(notification)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, query, pgNotification)
	if err != nil {
		return errors.Wrap(err, "failed to insert notification")
	}

	return nil
}

// FindByRecipientID returns notifications for a recipient, newest first
func (r *PostgresNotificationRepository) FindByRecipientID(ctx context.Context, recipientID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, recipient_id, type, message, metadata,
			   sent_at, created_at, updated_at, version
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY sent_at DESC`

	var pgNotifications []postgresNotification
	err := r.db.SelectContext(ctx, &pgNotifications, query, recipientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find notifications")
	}

	notifications := make([]*domain.Notification, 0, len(pgNotifications))
	for i := range pgNotifications {
		notification, err := r.toDomain(&pgNotifications[i])
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

func (r *PostgresNotificationRepository) toPostgres(notification *domain.Notification) (*postgresNotification, error) {
	metadata, err := json.Marshal(notification.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal notification metadata")
	}

	return &postgresNotification{
		ID:          notification.ID.String(),
		RecipientID: notification.RecipientID,
		Type:        string(notification.Type),
		Message:     notification.Message,
		Metadata:    metadata,
		SentAt:      notification.SentAt,
		CreatedAt:   notification.Timestamps.CreatedAt,
		UpdatedAt:   notification.Timestamps.UpdatedAt,
		Version:     notification.Version.Value,
	}, nil
}

func (r *PostgresNotificationRepository) toDomain(pgNotification *postgresNotification) (*domain.Notification, error) {
	var metadata map[string]string
	if len(pgNotification.Metadata) > 0 {
		if err := json.Unmarshal(pgNotification.Metadata, &metadata); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal notification metadata")
		}
	}

	return &domain.Notification{
		ID:          models.ID(pgNotification.ID),
		RecipientID: pgNotification.RecipientID,
		Type:        domain.NotificationType(pgNotification.Type),
		Message:     pgNotification.Message,
		Metadata:    metadata,
		SentAt:      pgNotification.SentAt,
		Timestamps: models.Timestamps{
			CreatedAt: pgNotification.CreatedAt,
			UpdatedAt: pgNotification.UpdatedAt,
		},
		Version: models.Version{Value: pgNotification.Version},
	}, nil
}
