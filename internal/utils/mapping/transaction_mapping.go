package mapping

import (
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/SscSPs/crew_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		Category:        d.Category,
		Comment:         d.Comment,
		OrderID:         nullString(d.OrderID),
		TransferID:      nullString(d.TransferID),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Category:        m.Category,
		Comment:         m.Comment,
		OrderID:         stringPtr(m.OrderID),
		TransferID:      stringPtr(m.TransferID),
		CreatedAt:       m.CreatedAt,
	}
}
