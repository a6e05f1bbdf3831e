package domain

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRegistry_PutGetRemove(t *testing.T) {
	registry := NewTransactionRegistry()

	tx := NewSagaTransaction("customer-1")
	registry.Put(tx)

	got, ok := registry.Get(tx.TransactionID)
	assert.True(t, ok)
	assert.Same(t, tx, got)
	assert.Equal(t, 1, registry.Count())

	registry.Remove(tx.TransactionID)
	_, ok = registry.Get(tx.TransactionID)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Count())
}

func TestTransactionRegistry_RemoveUnknownIsNoop(t *testing.T) {
	registry := NewTransactionRegistry()
	registry.Remove("missing")
	assert.Equal(t, 0, registry.Count())
}

func TestTransactionRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewTransactionRegistry()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tx := NewSagaTransaction(fmt.Sprintf("customer-%d-%d", w, i))
				registry.Put(tx)
				_, ok := registry.Get(tx.TransactionID)
				assert.True(t, ok)
				registry.Remove(tx.TransactionID)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 0, registry.Count())
}
