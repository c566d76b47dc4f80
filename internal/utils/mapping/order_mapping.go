package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/SscSPs/crew_ledger/internal/models"
)

// EncodeOrderDetails serializes the typed details document for the JSONB column.
func EncodeOrderDetails(d domain.OrderDetails) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode order details: %w", err)
	}
	return raw, nil
}

// DecodeOrderDetails parses the JSONB column. Empty or null documents yield zero details.
// Keys other than the known sections are ignored.
func DecodeOrderDetails(raw []byte) (domain.OrderDetails, error) {
	var d domain.OrderDetails
	if len(raw) == 0 || string(raw) == "null" {
		return d, nil
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.OrderDetails{}, fmt.Errorf("decode order details: %w", err)
	}
	return d, nil
}

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) (models.Order, error) {
	details, err := EncodeOrderDetails(d.Details)
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		OrderID:    d.OrderID,
		UserID:     d.UserID,
		BrigadeID:  nullString(d.BrigadeID),
		Status:     string(d.Status),
		TotalPrice: d.TotalPrice,
		Details:    details,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}, nil
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) (domain.Order, error) {
	details, err := DecodeOrderDetails(m.Details)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", m.OrderID, err)
	}
	return domain.Order{
		OrderID:    m.OrderID,
		UserID:     m.UserID,
		BrigadeID:  stringPtr(m.BrigadeID),
		Status:     domain.OrderStatus(m.Status),
		TotalPrice: m.TotalPrice,
		Details:    details,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}, nil
}

// ToDomainBrigade converts a model Brigade to a domain Brigade
func ToDomainBrigade(m models.Brigade) domain.Brigade {
	return domain.Brigade{
		BrigadeID:        m.BrigadeID,
		Name:             m.Name,
		BrigadierID:      m.BrigadierID,
		ProfitPercentage: m.ProfitPercentage,
		IsActive:         m.IsActive,
		AccountID:        m.AccountID.String,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
