package middleware

import (
	"fmt"
	"reflect"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators adds the "money" and "percentage" tags to gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterDecimalValidators(v)
}

// RegisterDecimalValidators registers the decimal tags on v.
func RegisterDecimalValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("money", validateMoney); err != nil {
		return err
	}
	return v.RegisterValidation("percentage", validatePercentage)
}

// decimalValue lets the validator see a decimal as its string form instead of an opaque struct.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// validateMoney accepts positive amounts with at most two fractional digits.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && domain.ValidateAmount(d) == nil
}

func validatePercentage(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && domain.ValidPercentage(d)
}
