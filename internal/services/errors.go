package services

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service errors
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedRegime    = errors.New("unsupported tax regime")
	ErrSearchBoundsExceeded = errors.New("target take-home outside search bounds")
)

// SearchBoundsError reports a target take-home that no gross salary inside
// the search interval can produce. It matches ErrSearchBoundsExceeded.
type SearchBoundsError struct {
	TargetMonthly   decimal.Decimal
	MinMonthly      decimal.Decimal
	MaxMonthly      decimal.Decimal
	LowerGrossLakhs decimal.Decimal
	UpperGrossLakhs decimal.Decimal
}

func (e *SearchBoundsError) Error() string {
	return fmt.Sprintf("%s: monthly target %s not within reachable range [%s, %s] for gross %s-%s lakh",
		ErrSearchBoundsExceeded,
		e.TargetMonthly.StringFixed(2), e.MinMonthly.StringFixed(2), e.MaxMonthly.StringFixed(2),
		e.LowerGrossLakhs, e.UpperGrossLakhs)
}

// Unwrap lets errors.Is match ErrSearchBoundsExceeded
func (e *SearchBoundsError) Unwrap() error {
	return ErrSearchBoundsExceeded
}
