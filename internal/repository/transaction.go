// Package repository provides the in-memory data access layer for a session.
package repository

import (
	"slices"
	"time"

	"slot-machine/internal/model"
)

// TransactionRepository keeps the chip movement history of one session.
// It lives only as long as the process.
type TransactionRepository struct {
	txs    []*model.Transaction
	nextID int64
	now    func() time.Time
}

// NewTransactionRepository creates an empty TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		nextID: 1,
		now:    time.Now,
	}
}

// Create appends a new transaction record and returns it.
func (r *TransactionRepository) Create(amount int64, txType string, description string) *model.Transaction {
	tx := &model.Transaction{
		ID:          r.nextID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   r.now(),
	}
	r.nextID++
	r.txs = append(r.txs, tx)
	return tx
}

// List returns all transactions, oldest first.
// The returned slice is a copy, so modifications won't affect the repository.
func (r *TransactionRepository) List() []*model.Transaction {
	return slices.Clone(r.txs)
}

// GetByType returns the transactions of the given types, oldest first.
func (r *TransactionRepository) GetByType(types ...string) []*model.Transaction {
	var out []*model.Transaction
	for _, tx := range r.txs {
		if slices.Contains(types, tx.Type) {
			out = append(out, tx)
		}
	}
	return out
}

// SumByType returns the total chip amount of the given transaction types.
func (r *TransactionRepository) SumByType(types ...string) int64 {
	var total int64
	for _, tx := range r.GetByType(types...) {
		total += tx.Amount
	}
	return total
}

// NetCashFlow returns the money paid in minus money cashed out, as seen from
// the player: buying chips is negative, cashing out is positive.
func (r *TransactionRepository) NetCashFlow() int64 {
	return -r.SumByType(model.CashTransactionTypes()...)
}

// Count returns the number of recorded transactions.
func (r *TransactionRepository) Count() int {
	return len(r.txs)
}
