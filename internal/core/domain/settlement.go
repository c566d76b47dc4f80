package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNothingToDistribute = errors.New("nothing to distribute")

// ProfitSplit is the result of dividing an order's net profit.
// CrewShare + OwnerShare == NetProfit exactly.
type ProfitSplit struct {
	NetProfit  decimal.Decimal `json:"netProfit"`
	CrewShare  decimal.Decimal `json:"crewShare"`
	OwnerShare decimal.Decimal `json:"ownerShare"`
}

// SplitProfit computes net profit and divides it by the crew percentage.
// The crew share is rounded half up to cents; the owner receives the exact remainder.
func SplitProfit(totalPrice, totalExpenses, percentage decimal.Decimal) (ProfitSplit, error) {
	net := totalPrice.Sub(totalExpenses)
	if !net.IsPositive() {
		return ProfitSplit{NetProfit: net}, ErrNothingToDistribute
	}
	crew := RoundMoney(net.Mul(percentage).Div(hundred))
	return ProfitSplit{
		NetProfit:  net,
		CrewShare:  crew,
		OwnerShare: net.Sub(crew),
	}, nil
}
