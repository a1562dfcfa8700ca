// internal/classify/classify_test.go
package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/util"
)

func strPtr(s string) *string { return &s }

func TestClassifyKnownTypes(t *testing.T) {
	tests := []struct {
		name      string
		tx        *domain.Transaction
		wantSign  string
		wantTitle string
		editable  bool
		deletable bool
	}{
		{
			name:      "sale uses description",
			tx:        &domain.Transaction{Type: domain.TransactionTypeSale, Description: strPtr("DX Gokaioh")},
			wantSign:  "+",
			wantTitle: "DX Gokaioh",
			editable:  true,
			deletable: true,
		},
		{
			name:      "sale falls back to generic title",
			tx:        &domain.Transaction{Type: domain.TransactionTypeSale},
			wantSign:  "+",
			wantTitle: "Jualan",
			editable:  true,
			deletable: true,
		},
		{
			name:      "income uses category",
			tx:        &domain.Transaction{Type: domain.TransactionTypeIncome, Category: strPtr("Gaji")},
			wantSign:  "+",
			wantTitle: "Gaji",
			editable:  true,
			deletable: true,
		},
		{
			name:      "expense uses category",
			tx:        &domain.Transaction{Type: domain.TransactionTypeExpense, Category: strPtr("Pos")},
			wantSign:  "-",
			wantTitle: "Pos",
			editable:  true,
			deletable: true,
		},
		{
			name:      "transfer out not editable",
			tx:        &domain.Transaction{Type: domain.TransactionTypeTransferOut},
			wantSign:  "-",
			wantTitle: "Pemindahan Keluar",
			editable:  false,
			deletable: true,
		},
		{
			name:      "transfer in not editable",
			tx:        &domain.Transaction{Type: domain.TransactionTypeTransferIn},
			wantSign:  "+",
			wantTitle: "Pemindahan Masuk",
			editable:  false,
			deletable: true,
		},
		{
			name:      "manual increase",
			tx:        &domain.Transaction{Type: domain.TransactionTypeManualIncrease},
			wantSign:  "+",
			wantTitle: "Pelarasan Baki",
			editable:  false,
			deletable: true,
		},
		{
			name:      "manual decrease",
			tx:        &domain.Transaction{Type: domain.TransactionTypeManualDecrease},
			wantSign:  "-",
			wantTitle: "Pelarasan Baki",
			editable:  false,
			deletable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.tx)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantSign, got.Sign)
			assert.Equal(t, tt.wantTitle, got.TitleFallback)
			assert.Equal(t, tt.editable, got.Editable)
			assert.Equal(t, tt.deletable, got.Deletable)
		})
	}
}

func TestClassifyUnknownTypeFailsLoudly(t *testing.T) {
	_, err := Classify(&domain.Transaction{ID: 7, Type: "derma"})
	assert.Error(t, err)
	assert.True(t, util.IsError(err, util.ErrUnknownTransactionType))
}

// The sign the classifier reports must agree with the sign the ledger applies
// to balances, for every known type.
func TestClassifySignMatchesLedgerSign(t *testing.T) {
	types := []domain.TransactionType{
		domain.TransactionTypeSale,
		domain.TransactionTypeIncome,
		domain.TransactionTypeExpense,
		domain.TransactionTypeTransferOut,
		domain.TransactionTypeTransferIn,
		domain.TransactionTypeManualIncrease,
		domain.TransactionTypeManualDecrease,
	}
	for _, typ := range types {
		c, err := Classify(&domain.Transaction{Type: typ})
		assert.NoError(t, err)
		wantSign := "+"
		if typ.Sign() < 0 {
			wantSign = "-"
		}
		assert.Equal(t, wantSign, c.Sign, "type %s", typ)
	}
}
