// internal/classify/classify.go
package classify

import (
	"fmt"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/util"
)

// IconKind names the pictogram a presentation layer should render for a
// transaction. The set mirrors the transaction types one-to-one except that
// both manual adjustment directions share one icon.
type IconKind string

const (
	IconSale        IconKind = "sale"
	IconIncome      IconKind = "income"
	IconExpense     IconKind = "expense"
	IconTransferOut IconKind = "transfer_out"
	IconTransferIn  IconKind = "transfer_in"
	IconAdjustment  IconKind = "adjustment"
)

// Classification is the display semantics of one transaction: the sign to
// prefix the amount with, the title to fall back to when the row carries no
// description, and whether the row may be edited or deleted individually.
// Transfer legs are never editable because both legs must stay in step; they
// are deletable, which removes the whole pair.
type Classification struct {
	Icon          IconKind `json:"icon"`
	Sign          string   `json:"sign"` // "+" or "-"
	TitleFallback string   `json:"title_fallback"`
	Editable      bool     `json:"editable"`
	Deletable     bool     `json:"deletable"`
}

// Classify maps a transaction to its display semantics. The switch is
// exhaustive over the known types; an unrecognized type returns an error
// rather than a blank classification, since it likely signals a ledger bug.
func Classify(tx *domain.Transaction) (Classification, error) {
	title := func(fallback string) string {
		if tx.Description != nil && *tx.Description != "" {
			return *tx.Description
		}
		return fallback
	}
	categoryTitle := func(fallback string) string {
		if tx.Category != nil && *tx.Category != "" {
			return *tx.Category
		}
		return fallback
	}

	switch tx.Type {
	case domain.TransactionTypeSale:
		return Classification{Icon: IconSale, Sign: "+", TitleFallback: title("Jualan"), Editable: true, Deletable: true}, nil
	case domain.TransactionTypeIncome:
		return Classification{Icon: IconIncome, Sign: "+", TitleFallback: categoryTitle("Pendapatan"), Editable: true, Deletable: true}, nil
	case domain.TransactionTypeExpense:
		return Classification{Icon: IconExpense, Sign: "-", TitleFallback: categoryTitle("Perbelanjaan"), Editable: true, Deletable: true}, nil
	case domain.TransactionTypeTransferOut:
		return Classification{Icon: IconTransferOut, Sign: "-", TitleFallback: categoryTitle("Pemindahan Keluar"), Editable: false, Deletable: true}, nil
	case domain.TransactionTypeTransferIn:
		return Classification{Icon: IconTransferIn, Sign: "+", TitleFallback: categoryTitle("Pemindahan Masuk"), Editable: false, Deletable: true}, nil
	case domain.TransactionTypeManualIncrease:
		return Classification{Icon: IconAdjustment, Sign: "+", TitleFallback: title("Pelarasan Baki"), Editable: false, Deletable: true}, nil
	case domain.TransactionTypeManualDecrease:
		return Classification{Icon: IconAdjustment, Sign: "-", TitleFallback: title("Pelarasan Baki"), Editable: false, Deletable: true}, nil
	}
	return Classification{}, fmt.Errorf("classify transaction %d (type %q): %w", tx.ID, tx.Type, util.ErrUnknownTransactionType)
}
