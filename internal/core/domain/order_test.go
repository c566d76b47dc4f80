package domain_test

import (
	"testing"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateDirectTransition(t *testing.T) {
	tests := []struct {
		name       string
		current    domain.OrderStatus
		hasBrigade bool
		target     domain.OrderStatus
		wantErr    error
	}{
		{name: "new to processing", current: domain.StatusNew, target: domain.StatusProcessing},
		{name: "new to cancel", current: domain.StatusNew, target: domain.StatusCancel},
		{name: "work to cancel", current: domain.StatusWork, hasBrigade: true, target: domain.StatusCancel},
		{name: "processing to work with brigade", current: domain.StatusProcessing, hasBrigade: true, target: domain.StatusWork},
		{name: "processing to work without brigade", current: domain.StatusProcessing, target: domain.StatusWork, wantErr: domain.ErrBrigadeRequired},
		{name: "work to done is settlement only", current: domain.StatusWork, hasBrigade: true, target: domain.StatusDone, wantErr: domain.ErrDoneViaSettlementOnly},
		{name: "done to cancel", current: domain.StatusDone, hasBrigade: true, target: domain.StatusCancel, wantErr: domain.ErrTerminalStatus},
		{name: "cancel to new", current: domain.StatusCancel, target: domain.StatusNew, wantErr: domain.ErrTerminalStatus},
		{name: "same status", current: domain.StatusProcessing, target: domain.StatusProcessing, wantErr: domain.ErrSameStatus},
		{name: "unknown target", current: domain.StatusNew, target: "archived", wantErr: domain.ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateDirectTransition(tt.current, tt.hasBrigade, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBillOfMaterials_Total(t *testing.T) {
	bom := domain.BillOfMaterials{Items: []domain.MaterialItem{
		{Name: "drywall", Unit: "m2", Quantity: d("12.5"), UnitPrice: d("8.40")},
		{Name: "screws", Unit: "box", Quantity: d("3"), UnitPrice: d("4.333")},
	}}
	assert.True(t, d("118.00").Equal(bom.Total()), "got %s", bom.Total())
}
