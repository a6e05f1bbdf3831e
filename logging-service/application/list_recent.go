package application

import (
	"context"
	"time"

	"github.com/orderstack/order-system/logging-service/domain"
	"github.com/pkg/errors"
)

// ListRecentQuery asks for the latest error reports
type ListRecentQuery struct {
	Limit int `json:"limit"`
}

// LogEntryView is the wire representation of a stored entry
type LogEntryView struct {
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListRecentResponse lists recent entries, newest last
type ListRecentResponse struct {
	Entries []LogEntryView `json:"entries"`
}

// ListRecent use case
type ListRecent struct {
	logRepository domain.LogRepository
}

// NewListRecent creates a new ListRecent use case
func NewListRecent(logRepository domain.LogRepository) *ListRecent {
	return &ListRecent{
		logRepository: logRepository,
	}
}

// Execute returns the most recent entries
func (uc *ListRecent) Execute(ctx context.Context, query *ListRecentQuery) (*ListRecentResponse, error) {
	entries, err := uc.logRepository.Recent(ctx, query.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list log entries")
	}

	views := make([]LogEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, LogEntryView{
			Source:    entry.Source,
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		})
	}

	return &ListRecentResponse{Entries: views}, nil
}
