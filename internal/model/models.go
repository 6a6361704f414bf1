// Package model defines the data models for the slot machine session.
package model

import "time"

// Transaction records one chip movement during a session.
type Transaction struct {
	ID          int64
	Amount      int64 // Chips added to (positive) or removed from (negative) the table
	Type        string
	Description string
	CreatedAt   time.Time
}

// Transaction types for categorizing chip movements.
const (
	TxTypeGrant   = "grant"    // Starting chips given by the house
	TxTypeBuy     = "buy"      // Chips bought with cash
	TxTypeCashOut = "cash_out" // Chips exchanged back into cash
	TxTypeBet     = "bet"      // Chips put into the machine
	TxTypeWin     = "win"      // Winnings credited after a spin
)

// CashTransactionTypes returns the transaction types that move real money.
// Only these affect the cumulative cash flow.
func CashTransactionTypes() []string {
	return []string{TxTypeBuy, TxTypeCashOut}
}

// IsCashMovement reports whether the transaction moved real money.
func (t *Transaction) IsCashMovement() bool {
	return t.Type == TxTypeBuy || t.Type == TxTypeCashOut
}
