// Package session holds the financial state of one player at the machine.
// Chips and cash flow are only changed through the mutators below, each of
// which validates its input before touching any state.
package session

import (
	"errors"
	"fmt"

	"slot-machine/internal/game/slot"
	"slot-machine/internal/model"
	"slot-machine/internal/repository"
)

const (
	// DefaultStartingChips is the grant given when a session opens.
	DefaultStartingChips = 2000

	// DefaultBuyCap is the most chips a single purchase can add.
	DefaultBuyCap = 5000
)

// Errors for session mutators
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientChips = errors.New("not enough chips")
)

// Session is the state of one player for the lifetime of the process.
type Session struct {
	chips      int64
	cashFlow   int64
	errorCount int
	lastSpin   slot.Triple
	lastInput  string
	lastOutput string
	ledger     *repository.TransactionRepository
}

// New creates a Session with startingChips granted by the house and the
// sentinel spin on display.
func New(startingChips int64) *Session {
	s := &Session{
		lastSpin: slot.SentinelTriple,
		ledger:   repository.NewTransactionRepository(),
	}
	if startingChips > 0 {
		_ = s.GrantChips(startingChips)
	}
	return s
}

// Chips returns the chips currently on the table.
func (s *Session) Chips() int64 {
	return s.chips
}

// CashFlow returns money cashed out minus money paid in.
func (s *Session) CashFlow() int64 {
	return s.cashFlow
}

// ErrorCount returns the number of rejected inputs so far.
func (s *Session) ErrorCount() int {
	return s.errorCount
}

// LastSpin returns the most recent reel result.
func (s *Session) LastSpin() slot.Triple {
	return s.lastSpin
}

// LastInput returns the most recent raw input line.
func (s *Session) LastInput() string {
	return s.lastInput
}

// LastOutput returns the most recent status message.
func (s *Session) LastOutput() string {
	return s.lastOutput
}

// Ledger returns the chip movement history.
func (s *Session) Ledger() *repository.TransactionRepository {
	return s.ledger
}

// FinancialPosition returns cash flow plus chips on the table: the session's
// net profit or loss.
func (s *Session) FinancialPosition() int64 {
	return s.cashFlow + s.chips
}

// GrantChips adds chips without any cash changing hands.
func (s *Session) GrantChips(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: grant of %d", ErrInvalidAmount, amount)
	}
	s.chips += amount
	s.ledger.Create(amount, model.TxTypeGrant, "chips granted by the house")
	return nil
}

// CreditWinnings adds the chips won on a spin. Like a grant, it does not
// touch the cash flow.
func (s *Session) CreditWinnings(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: winnings of %d", ErrInvalidAmount, amount)
	}
	s.chips += amount
	s.ledger.Create(amount, model.TxTypeWin, "spin winnings")
	return nil
}

// BuyChips buys up to limit chips. A request above limit is clamped to limit
// and reported through clamped. Returns the number of chips actually bought.
func (s *Session) BuyChips(amount, limit int64) (bought int64, clamped bool, err error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("%w: purchase of %d", ErrInvalidAmount, amount)
	}
	if limit <= 0 {
		return 0, false, fmt.Errorf("%w: purchase limit %d", ErrInvalidAmount, limit)
	}

	bought = amount
	if amount > limit {
		bought, clamped = limit, true
	}
	s.moveCash(bought, model.TxTypeBuy, "chips bought")
	return bought, clamped, nil
}

// CashOut exchanges amount chips back into cash.
func (s *Session) CashOut(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: cash out of %d", ErrInvalidAmount, amount)
	}
	if amount > s.chips {
		return fmt.Errorf("%w: cash out of %d with %d on the table", ErrInsufficientChips, amount, s.chips)
	}
	s.moveCash(-amount, model.TxTypeCashOut, "chips cashed out")
	return nil
}

// CashOutAll cashes out every chip on the table and returns the amount.
func (s *Session) CashOutAll() int64 {
	amount := s.chips
	if amount > 0 {
		s.moveCash(-amount, model.TxTypeCashOut, "all chips cashed out")
	}
	return amount
}

// PlaceBet takes amount chips off the table for a spin. The bet is at risk
// until the spin is resolved and any winnings credited.
func (s *Session) PlaceBet(amount int64) error {
	if amount <= 0 || amount > s.chips {
		return fmt.Errorf("%w: bet of %d with %d on the table", ErrInsufficientChips, amount, s.chips)
	}
	s.chips -= amount
	s.ledger.Create(-amount, model.TxTypeBet, "bet placed")
	return nil
}

// RecordError counts a rejected input and returns the new count.
func (s *Session) RecordError() int {
	s.errorCount++
	return s.errorCount
}

// RecordSpin stores the latest reel result for display.
func (s *Session) RecordSpin(t slot.Triple) {
	s.lastSpin = t
}

// SetLastInput stores the latest raw input for display.
func (s *Session) SetLastInput(text string) {
	s.lastInput = text
}

// SetLastOutput stores the latest status message for display.
func (s *Session) SetLastOutput(text string) {
	s.lastOutput = text
}

// moveCash is the single cash movement: chips change by delta and the cash
// flow by its inverse.
func (s *Session) moveCash(delta int64, txType, description string) {
	s.chips += delta
	s.cashFlow -= delta
	s.ledger.Create(delta, txType, description)
}
