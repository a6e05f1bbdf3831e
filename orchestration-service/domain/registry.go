package domain

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// TransactionRegistry tracks in-flight saga transactions by transaction
// id. Entries are created at saga start and removed at any terminal
// outcome. Safe for concurrent use from multiple in-flight requests.
// There is no persistence: a process restart leaves the registry empty
// while downstream services may hold orphaned state.
type TransactionRegistry struct {
	transactions *xsync.MapOf[string, *SagaTransaction]
}

// NewTransactionRegistry creates an empty registry
func NewTransactionRegistry() *TransactionRegistry {
	return &TransactionRegistry{
		transactions: xsync.NewMapOf[string, *SagaTransaction](),
	}
}

// Put stores a transaction
func (r *TransactionRegistry) Put(tx *SagaTransaction) {
	r.transactions.Store(tx.TransactionID, tx)
}

// Get looks up a transaction by id
func (r *TransactionRegistry) Get(transactionID string) (*SagaTransaction, bool) {
	return r.transactions.Load(transactionID)
}

// Remove deletes a transaction at a terminal outcome
func (r *TransactionRegistry) Remove(transactionID string) {
	r.transactions.Delete(transactionID)
}

// Count returns the number of in-flight transactions
func (r *TransactionRegistry) Count() int {
	return r.transactions.Size()
}
