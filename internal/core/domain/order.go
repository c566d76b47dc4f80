package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order: new -> processing -> work -> {done, cancel}.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusWork       OrderStatus = "work"
	StatusDone       OrderStatus = "done"
	StatusCancel     OrderStatus = "cancel"
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusWork, StatusDone, StatusCancel:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancel
}

var (
	ErrDoneViaSettlementOnly = errors.New("order can only be completed through settlement")
	ErrTerminalStatus        = errors.New("order is already in a terminal status")
	ErrBrigadeRequired       = errors.New("order must have a brigade assigned before work can start")
	ErrSameStatus            = errors.New("order is already in the requested status")
	ErrUnknownStatus         = errors.New("unknown order status")
)

// ValidateDirectTransition checks a status write that bypasses claim and settlement.
// Such writes are used for cancellation and administrative corrections and may never reach done.
func ValidateDirectTransition(current OrderStatus, hasBrigade bool, target OrderStatus) error {
	if !target.IsValid() {
		return ErrUnknownStatus
	}
	if target == StatusDone {
		return ErrDoneViaSettlementOnly
	}
	if current.IsTerminal() {
		return ErrTerminalStatus
	}
	if current == target {
		return ErrSameStatus
	}
	if target == StatusWork && !hasBrigade {
		return ErrBrigadeRequired
	}
	return nil
}

// Order is a unit of billable work.
type Order struct {
	OrderID    string          `json:"orderID"`
	UserID     string          `json:"userID"` // customer
	BrigadeID  *string         `json:"brigadeID,omitempty"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Details    OrderDetails    `json:"details"`
	AuditFields
}

// HasBrigade reports whether a crew is assigned.
func (o Order) HasBrigade() bool {
	return o.BrigadeID != nil && *o.BrigadeID != ""
}

// OrderDetails is the structured document stored alongside an order.
// Each section is optional; the repository encodes it as JSON.
type OrderDetails struct {
	BillOfMaterials  *BillOfMaterials  `json:"billOfMaterials,omitempty"`
	FinancialSummary *FinancialSummary `json:"financialSummary,omitempty"`
}

// BillOfMaterials lists the priced line items the order was quoted from.
type BillOfMaterials struct {
	Items []MaterialItem `json:"items"`
}

type MaterialItem struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Total is the sum of quantity times unit price over all items, rounded to cents.
func (b BillOfMaterials) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return RoundMoney(total)
}

// FinancialSummary records the outcome of settling an order.
type FinancialSummary struct {
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	CrewShare        decimal.Decimal `json:"crewShare"`
	OwnerShare       decimal.Decimal `json:"ownerShare"`
	SettledAt        time.Time       `json:"settledAt"`
	SettledBy        string          `json:"settledBy"`
}

// SettlementOrder is an order loaded for settlement together with its brigade terms.
type SettlementOrder struct {
	Order
	ProfitPercentage decimal.Decimal
	BrigadierID      string
	CrewAccountID    *string // nil when the brigade's crew account is missing
}
