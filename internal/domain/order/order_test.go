package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/id"
	"shopinvoice/internal/core/types"
)

func validOrder() *Order {
	return &Order{
		ID:           id.New(),
		Number:       "22001234",
		Currency:     "CZK",
		CustomerName: "Jan Novak",
		BillingAddress: &Address{
			Street: "Dlouha 12", City: "Praha", Zip: "110 00",
		},
		Items: []Item{
			{Label: "Widget", Count: 1, FinalPrice: types.MustMoney("250"), VATRate: types.TaxRateFromPercent(21)},
		},
		Price: types.MustMoney("250"),
	}
}

func TestOrderValidate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, validOrder().Validate(ctx))

	tests := []struct {
		name   string
		mutate func(o *Order)
		field  string
	}{
		{"missing id", func(o *Order) { o.ID = id.Nil() }, "id"},
		{"missing number", func(o *Order) { o.Number = "" }, "number"},
		{"missing currency", func(o *Order) { o.Currency = "" }, "currency"},
		{"missing customer name", func(o *Order) { o.CustomerName = "" }, "customerName"},
		{"missing billing address", func(o *Order) { o.BillingAddress = nil }, "billingAddress"},
		{"item without label", func(o *Order) { o.Items[0].Label = "" }, "items"},
		{"item with zero count", func(o *Order) { o.Items[0].Count = 0 }, "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(o)

			err := o.Validate(ctx)
			appErr, ok := apperror.AsAppError(err)
			if assert.True(t, ok, "expected AppError, got %v", err) {
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				assert.Equal(t, tt.field, appErr.Details["field"])
			}
		})
	}
}
