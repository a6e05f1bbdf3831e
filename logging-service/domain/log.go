package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/orderstack/order-system/shared/models"
	"github.com/pkg/errors"
)

// LogEntry is a single error report forwarded by another service
type LogEntry struct {
	ID        models.ID
	Source    string
	Message   string
	Timestamp time.Time
}

// NewLogEntry validates and builds a log entry. A missing timestamp is
// filled with the arrival time.
func NewLogEntry(source, message string, timestamp time.Time) (*LogEntry, error) {
	if source == "" {
		return nil, errors.New("source is required")
	}

	if message == "" {
		return nil, errors.New("message is required")
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return &LogEntry{
		ID:        models.GenerateUUID(),
		Source:    source,
		Message:   message,
		Timestamp: timestamp,
	}, nil
}

// String renders the entry in the centralized log line format
func (e *LogEntry) String() string {
	return fmt.Sprintf("%s - %s: %s", e.Timestamp.Format(time.RFC3339), e.Source, e.Message)
}

// LogRepository interface
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	Recent(ctx context.Context, limit int) ([]*LogEntry, error)
}
