package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"slot-machine/internal/game/slot"
	"slot-machine/internal/model"
)

func TestNew(t *testing.T) {
	s := New(DefaultStartingChips)

	assert.Equal(t, int64(2000), s.Chips())
	assert.Equal(t, int64(0), s.CashFlow())
	assert.Equal(t, 0, s.ErrorCount())
	assert.Equal(t, slot.SentinelTriple, s.LastSpin())
	assert.Equal(t, int64(2000), s.FinancialPosition())
	assert.Equal(t, int64(2000), s.Ledger().SumByType(model.TxTypeGrant))
}

func TestNew_NoGrant(t *testing.T) {
	s := New(0)
	assert.Equal(t, int64(0), s.Chips())
	assert.Equal(t, 0, s.Ledger().Count())
}

func TestGrantChips(t *testing.T) {
	s := New(0)

	require.NoError(t, s.GrantChips(300))
	assert.Equal(t, int64(300), s.Chips())
	assert.Equal(t, int64(0), s.CashFlow())

	assert.ErrorIs(t, s.GrantChips(0), ErrInvalidAmount)
	assert.ErrorIs(t, s.GrantChips(-5), ErrInvalidAmount)
	assert.Equal(t, int64(300), s.Chips())
}

func TestBuyChips(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		wantBought  int64
		wantClamped bool
		wantErr     error
	}{
		{"normal purchase", 1200, 1200, false, nil},
		{"exactly the cap", 5000, 5000, false, nil},
		{"above the cap clamps", 9000, 5000, true, nil},
		{"zero is invalid", 0, 0, false, ErrInvalidAmount},
		{"negative is invalid", -10, 0, false, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(100)

			bought, clamped, err := s.BuyChips(tt.amount, DefaultBuyCap)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, int64(100), s.Chips())
				assert.Equal(t, int64(0), s.CashFlow())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBought, bought)
			assert.Equal(t, tt.wantClamped, clamped)
			assert.Equal(t, 100+tt.wantBought, s.Chips())
			assert.Equal(t, -tt.wantBought, s.CashFlow())
		})
	}
}

func TestCashOut(t *testing.T) {
	s := New(0)
	_, _, err := s.BuyChips(1000, DefaultBuyCap)
	require.NoError(t, err)

	require.NoError(t, s.CashOut(400))
	assert.Equal(t, int64(600), s.Chips())
	assert.Equal(t, int64(-600), s.CashFlow())

	assert.ErrorIs(t, s.CashOut(601), ErrInsufficientChips)
	assert.ErrorIs(t, s.CashOut(0), ErrInvalidAmount)
	assert.ErrorIs(t, s.CashOut(-1), ErrInvalidAmount)
	assert.Equal(t, int64(600), s.Chips())
	assert.Equal(t, int64(-600), s.CashFlow())

	assert.Equal(t, int64(600), s.CashOutAll())
	assert.Equal(t, int64(0), s.Chips())
	assert.Equal(t, int64(0), s.CashFlow())
	assert.Equal(t, int64(0), s.CashOutAll())
}

func TestPlaceBet(t *testing.T) {
	s := New(2000)

	require.NoError(t, s.PlaceBet(500))
	assert.Equal(t, int64(1500), s.Chips())
	assert.Equal(t, int64(0), s.CashFlow())

	assert.ErrorIs(t, s.PlaceBet(1501), ErrInsufficientChips)
	assert.ErrorIs(t, s.PlaceBet(0), ErrInsufficientChips)
	assert.ErrorIs(t, s.PlaceBet(-100), ErrInsufficientChips)
	assert.Equal(t, int64(1500), s.Chips())
}

func TestPairMatchScenario(t *testing.T) {
	// Start with 2000, bet 500, spin resolves to a pair.
	s := New(2000)
	require.NoError(t, s.PlaceBet(500))

	result := slot.Result{Triple: slot.Triple{3, 3, 6}, Outcome: slot.PairMatch, Multiplier: 3}
	require.NoError(t, s.CreditWinnings(result.Payout(500)))
	s.RecordSpin(result.Triple)

	assert.Equal(t, int64(3000), s.Chips())
	assert.Equal(t, slot.Triple{3, 3, 6}, s.LastSpin())
}

func TestRecordError(t *testing.T) {
	s := New(0)
	for i := 1; i <= 10; i++ {
		assert.Equal(t, i, s.RecordError())
	}
	assert.Equal(t, 10, s.ErrorCount())
}

func TestLastInputOutput(t *testing.T) {
	s := New(0)
	s.SetLastInput("abc")
	s.SetLastOutput("hello")
	assert.Equal(t, "abc", s.LastInput())
	assert.Equal(t, "hello", s.LastOutput())
}

// TestBuyChipsCapProperty checks that no single purchase adds more than the cap.
func TestBuyChipsCapProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.Int64Range(0, 10000).Draw(t, "start")
		amount := rapid.Int64Range(-1000, 1_000_000).Draw(t, "amount")
		s := New(start)

		before := s.Chips()
		bought, clamped, err := s.BuyChips(amount, DefaultBuyCap)
		gained := s.Chips() - before

		if gained > DefaultBuyCap {
			t.Fatalf("BuyChips(%d) added %d chips, more than cap %d", amount, gained, DefaultBuyCap)
		}
		if err != nil {
			if gained != 0 {
				t.Fatalf("failed BuyChips(%d) changed chips by %d", amount, gained)
			}
			return
		}
		if gained != bought {
			t.Fatalf("BuyChips(%d) reported %d bought but added %d", amount, bought, gained)
		}
		if clamped != (amount > DefaultBuyCap) {
			t.Fatalf("BuyChips(%d) clamped=%v", amount, clamped)
		}
	})
}

// TestPlaceBetOverdraftProperty checks that an oversized bet changes nothing.
func TestPlaceBetOverdraftProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(rapid.Int64Range(0, 10000).Draw(t, "start"))
		over := rapid.Int64Range(1, 10000).Draw(t, "over")

		chips, cashFlow := s.Chips(), s.CashFlow()
		err := s.PlaceBet(chips + over)

		if err == nil {
			t.Fatalf("PlaceBet(%d) with %d chips succeeded", chips+over, chips)
		}
		if !errors.Is(err, ErrInsufficientChips) {
			t.Fatalf("unexpected error %v", err)
		}
		if s.Chips() != chips || s.CashFlow() != cashFlow {
			t.Fatalf("failed bet mutated state: chips %d->%d, cash flow %d->%d",
				chips, s.Chips(), cashFlow, s.CashFlow())
		}
	})
}

// TestFinancialPositionRoundTripProperty checks the position after an arbitrary
// sequence of buys, cash outs and bets.
// *For any* sequence of operations, FinancialPosition() equals the negated sum of
// cash movements (buys subtract, cash outs add) plus the chips on the table.
func TestFinancialPositionRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(DefaultStartingChips)
		var moved int64 // buys subtract, cash outs add

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				bought, _, err := s.BuyChips(rapid.Int64Range(1, 8000).Draw(t, "buy"), DefaultBuyCap)
				if err == nil {
					moved -= bought
				}
			case 1:
				amount := rapid.Int64Range(1, 8000).Draw(t, "cashOut")
				if s.CashOut(amount) == nil {
					moved += amount
				}
			case 2:
				bet := rapid.Int64Range(1, 3000).Draw(t, "bet")
				if s.PlaceBet(bet) == nil {
					multiplier := rapid.SampledFrom([]int64{0, 3, 5, 10}).Draw(t, "multiplier")
					if multiplier > 0 {
						_ = s.CreditWinnings(bet * multiplier)
					}
				}
			}

			if s.Chips() < 0 {
				t.Fatalf("chips went negative: %d", s.Chips())
			}
		}

		if got, want := s.FinancialPosition(), moved+s.Chips(); got != want {
			t.Fatalf("FinancialPosition() = %d, want %d", got, want)
		}
		if s.CashFlow() != s.Ledger().NetCashFlow() {
			t.Fatalf("cash flow %d disagrees with ledger %d", s.CashFlow(), s.Ledger().NetCashFlow())
		}
	})
}
