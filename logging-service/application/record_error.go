package application

import (
	"context"
	"fmt"
	"time"

	"github.com/orderstack/order-system/logging-service/domain"
	"github.com/pkg/errors"
)

// RecordErrorCommand represents an error report from another service
type RecordErrorCommand struct {
	Source    string `json:"source"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RecordErrorResponse acknowledges the report
type RecordErrorResponse struct {
	EntryID string `json:"entry_id"`
}

// RecordError use case
type RecordError struct {
	logRepository domain.LogRepository
}

// NewRecordError creates a new RecordError use case
func NewRecordError(logRepository domain.LogRepository) *RecordError {
	return &RecordError{
		logRepository: logRepository,
	}
}

// Execute records and prints the error report
func (uc *RecordError) Execute(ctx context.Context, cmd *RecordErrorCommand) (*RecordErrorResponse, error) {
	var timestamp time.Time
	if cmd.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339Nano, cmd.Timestamp)
		if err != nil {
			return nil, errors.Wrap(err, "invalid timestamp")
		}
		timestamp = parsed
	}

	entry, err := domain.NewLogEntry(cmd.Source, cmd.Message, timestamp)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log entry")
	}

	if err := uc.logRepository.Append(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to store log entry")
	}

	fmt.Println(entry.String())

	return &RecordErrorResponse{
		EntryID: entry.ID.String(),
	}, nil
}
