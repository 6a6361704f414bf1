package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"slot-machine/internal/model"
)

// ============================================================================
// TransactionRepository Tests
// ============================================================================

func TestTransactionRepository_Create(t *testing.T) {
	repo := NewTransactionRepository()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	tx := repo.Create(2000, model.TxTypeGrant, "starting chips")
	require.NotNil(t, tx)
	assert.Equal(t, int64(1), tx.ID)
	assert.Equal(t, int64(2000), tx.Amount)
	assert.Equal(t, model.TxTypeGrant, tx.Type)
	assert.Equal(t, "starting chips", tx.Description)
	assert.Equal(t, fixed, tx.CreatedAt)

	tx2 := repo.Create(-500, model.TxTypeBet, "")
	assert.Equal(t, int64(2), tx2.ID)
	assert.Equal(t, 2, repo.Count())
}

func TestTransactionRepository_ListIsCopy(t *testing.T) {
	repo := NewTransactionRepository()
	repo.Create(100, model.TxTypeBuy, "")

	list := repo.List()
	require.Len(t, list, 1)
	list[0] = nil

	assert.NotNil(t, repo.List()[0])
}

func TestTransactionRepository_SumByType(t *testing.T) {
	repo := NewTransactionRepository()
	repo.Create(2000, model.TxTypeGrant, "")
	repo.Create(-500, model.TxTypeBet, "")
	repo.Create(1500, model.TxTypeWin, "")
	repo.Create(300, model.TxTypeBuy, "")
	repo.Create(-800, model.TxTypeCashOut, "")

	assert.Equal(t, int64(-500), repo.SumByType(model.TxTypeBet))
	assert.Equal(t, int64(1000), repo.SumByType(model.TxTypeBet, model.TxTypeWin))
	assert.Equal(t, int64(0), repo.SumByType("unknown"))
	assert.Len(t, repo.GetByType(model.CashTransactionTypes()...), 2)

	// Bought 300, cashed out 800: the player is 500 up in cash.
	assert.Equal(t, int64(500), repo.NetCashFlow())
}

// TestNetCashFlowProperty checks that only buys and cash outs move the cash flow.
func TestNetCashFlowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := NewTransactionRepository()
		types := []string{model.TxTypeGrant, model.TxTypeBuy, model.TxTypeCashOut, model.TxTypeBet, model.TxTypeWin}

		var expected int64
		n := rapid.IntRange(0, 50).Draw(t, "n")
		for i := 0; i < n; i++ {
			txType := rapid.SampledFrom(types).Draw(t, "type")
			amount := rapid.Int64Range(-5000, 5000).Draw(t, "amount")
			tx := repo.Create(amount, txType, "")
			if tx.IsCashMovement() {
				expected -= amount
			}
		}

		if got := repo.NetCashFlow(); got != expected {
			t.Fatalf("NetCashFlow() = %d, want %d", got, expected)
		}
		if repo.Count() != n {
			t.Fatalf("Count() = %d, want %d", repo.Count(), n)
		}
	})
}
