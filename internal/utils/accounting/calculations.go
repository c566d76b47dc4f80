package accounting

import (
	"fmt"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges folds a set of transactions into the net delta per account.
// This is used by the repositories so that a balance update is always derived from
// the exact rows being inserted in the same database transaction.
func BalanceChanges(transactions []domain.Transaction) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(transactions))
	for _, txn := range transactions {
		if !txn.TransactionType.IsValid() {
			return nil, fmt.Errorf("unknown transaction type '%s' for transaction %s", txn.TransactionType, txn.TransactionID)
		}
		if txn.Amount.IsNegative() {
			return nil, fmt.Errorf("transaction %s has negative amount %s", txn.TransactionID, txn.Amount)
		}
		changes[txn.AccountID] = changes[txn.AccountID].Add(txn.SignedAmount())
	}
	return changes, nil
}

// ValidateTransferLegs checks that the two legs of a transfer cancel out across accounts.
func ValidateTransferLegs(legs []domain.Transaction) error {
	if len(legs) != 2 {
		return fmt.Errorf("transfer must have exactly two legs, got %d", len(legs))
	}
	if legs[0].AccountID == legs[1].AccountID {
		return fmt.Errorf("transfer legs must affect two different accounts")
	}
	sum := legs[0].SignedAmount().Add(legs[1].SignedAmount())
	if !sum.IsZero() {
		return fmt.Errorf("transfer legs do not balance to zero: sum is %s", sum.String())
	}
	return nil
}
