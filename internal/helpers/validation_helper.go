package helpers

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Exact comparisons for decimal.Decimal fields, e.g. `validate:"decimal_gte=0.1"`
var decimalComparisons = map[string]func(cmp int) bool{
	"decimal_gt":  func(cmp int) bool { return cmp > 0 },
	"decimal_gte": func(cmp int) bool { return cmp >= 0 },
	"decimal_lt":  func(cmp int) bool { return cmp < 0 },
	"decimal_lte": func(cmp int) bool { return cmp <= 0 },
}

// Validator returns the shared validator. decimal.Decimal fields reach
// validators as their exact string form and are checked with the
// decimal_* tags, never through float64.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(decimalTypeFunc, decimal.Decimal{})
		for tag, accept := range decimalComparisons {
			if err := validate.RegisterValidation(tag, decimalCompare(accept)); err != nil {
				panic(fmt.Sprintf("register %s validation: %v", tag, err))
			}
		}
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

func decimalTypeFunc(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// decimalCompare builds a validation that compares the field with the tag
// parameter. Unparseable values fail.
func decimalCompare(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(value.Cmp(limit))
	}
}

// ValidateStruct validates a params struct and flattens the failures into
// one readable error ("gross_salary_lakhs must be >= 0.1").
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, describeFieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte", "decimal_gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte", "decimal_lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "gt", "decimal_gt":
		return fmt.Sprintf("%s must be > %s", fe.Field(), fe.Param())
	case "lt", "decimal_lt":
		return fmt.Sprintf("%s must be < %s", fe.Field(), fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
