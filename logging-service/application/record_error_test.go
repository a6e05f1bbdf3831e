package application

import (
	"context"
	"testing"
	"time"

	"github.com/orderstack/order-system/logging-service/infrastructure"
	"github.com/stretchr/testify/assert"
)

func TestRecordError_Execute(t *testing.T) {
	repo := infrastructure.NewMemoryLogRepository()
	uc := NewRecordError(repo)

	response, err := uc.Execute(context.Background(), &RecordErrorCommand{
		Source:    "payment-gateway",
		Message:   "endpoint unreachable",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.EntryID)

	entries, err := repo.Recent(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "payment-gateway", entries[0].Source)
}

func TestRecordError_Execute_MissingTimestampDefaults(t *testing.T) {
	repo := infrastructure.NewMemoryLogRepository()
	uc := NewRecordError(repo)

	_, err := uc.Execute(context.Background(), &RecordErrorCommand{
		Source:  "order-service",
		Message: "boom",
	})

	assert.NoError(t, err)

	entries, _ := repo.Recent(context.Background(), 1)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestRecordError_Execute_Validation(t *testing.T) {
	repo := infrastructure.NewMemoryLogRepository()
	uc := NewRecordError(repo)

	_, err := uc.Execute(context.Background(), &RecordErrorCommand{Message: "no source"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), &RecordErrorCommand{
		Source:    "order-service",
		Message:   "bad time",
		Timestamp: "not-a-time",
	})
	assert.Error(t, err)
}

func TestListRecent_Execute_NewestLast(t *testing.T) {
	repo := infrastructure.NewMemoryLogRepository()
	record := NewRecordError(repo)
	list := NewListRecent(repo)

	for _, msg := range []string{"first", "second", "third"} {
		_, err := record.Execute(context.Background(), &RecordErrorCommand{
			Source:  "order-service",
			Message: msg,
		})
		assert.NoError(t, err)
	}

	response, err := list.Execute(context.Background(), &ListRecentQuery{Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, response.Entries, 2)
	assert.Equal(t, "second", response.Entries[0].Message)
	assert.Equal(t, "third", response.Entries[1].Message)
}
