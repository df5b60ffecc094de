package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/api/responses"
	"github.com/taxwise/taxcalc/internal/types/business"
	"go.uber.org/zap"
)

// Gross search interval and convergence tolerance, in lakhs
var (
	SearchLowerBoundLakhs = decimal.NewFromInt(1)
	SearchUpperBoundLakhs = decimal.NewFromInt(1000)
	SearchToleranceLakhs  = decimal.RequireFromString("0.01")
)

// 1000/0.01 converges in 17 halvings; the cap only guards against a bad tolerance
const maxSearchIterations = 64

var half = decimal.RequireFromString("0.5")

// FindGrossForTargetTakeHome bisects the gross salary whose monthly take-home
// meets the target. The returned breakdown is evaluated at the final upper
// bound, so its take-home is at or just above the target, within tolerance.
//
// Targets outside [net(lower), net(upper)], widened by one tolerance for
// the rounding of a monthly figure back to an annual one, return a
// *SearchBoundsError.
func (s *TaxService) FindGrossForTargetTakeHome(ctx context.Context, p params.TargetTakeHomeParams) (*responses.GrossSearchResult, error) {
	regime, err := s.ResolveRegime(p.Regime)
	if err != nil {
		return nil, err
	}
	if err := helpers.ValidateStruct(p); err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}

	targetMonthly := helpers.LakhsToRupees(p.TargetMonthlyTakeHomeLakhs)
	targetAnnual := targetMonthly.Mul(monthsPerYear)

	s.logger.Debug("Searching gross salary for target take-home",
		zap.String("regime", string(regime)),
		zap.String("target_monthly_lakhs", p.TargetMonthlyTakeHomeLakhs.String()))

	low := SearchLowerBoundLakhs
	high := SearchUpperBoundLakhs

	minNet, err := s.annualNet(low, regime)
	if err != nil {
		return nil, err
	}
	maxNet, err := s.annualNet(high, regime)
	if err != nil {
		return nil, err
	}
	slack := helpers.LakhsToRupees(SearchToleranceLakhs)
	if targetAnnual.LessThan(minNet.Sub(slack)) || targetAnnual.GreaterThan(maxNet.Add(slack)) {
		boundsErr := &SearchBoundsError{
			TargetMonthly:   p.TargetMonthlyTakeHomeLakhs,
			MinMonthly:      helpers.RupeesToLakhs(minNet.Div(monthsPerYear)),
			MaxMonthly:      helpers.RupeesToLakhs(maxNet.Div(monthsPerYear)),
			LowerGrossLakhs: low,
			UpperGrossLakhs: high,
		}
		s.logger.Warn("Target take-home unreachable",
			zap.String("regime", string(regime)),
			zap.Error(boundsErr))
		return nil, boundsErr
	}

	iterations := 0
	for high.Sub(low).GreaterThan(SearchToleranceLakhs) && iterations < maxSearchIterations {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "gross search cancelled")
		}
		iterations++

		mid := low.Add(high).Mul(half)
		net, err := s.annualNet(mid, regime)
		if err != nil {
			return nil, err
		}
		if net.LessThan(targetAnnual) {
			low = mid
		} else {
			high = mid
		}
	}

	breakdown, err := s.salaryBreakdown(helpers.LakhsToRupees(high), regime)
	if err != nil {
		return nil, err
	}
	breakdown.AuditTrail.AppliedRules = append(breakdown.AuditTrail.AppliedRules, "BISECTION_SEARCH")

	s.logger.Debug("Found gross salary for target take-home",
		zap.String("calculation_id", breakdown.CalculationID.String()),
		zap.String("gross_salary_lakhs", high.String()),
		zap.Int("iterations", iterations))

	return &responses.GrossSearchResult{
		SalaryBreakdown:       *breakdown,
		TargetMonthlyTakeHome: targetMonthly,
		Iterations:            iterations,
		ToleranceLakhs:        SearchToleranceLakhs,
	}, nil
}

// annualNet is the full-precision annual net salary for a gross in lakhs
func (s *TaxService) annualNet(grossLakhs decimal.Decimal, regime business.TaxRegime) (decimal.Decimal, error) {
	figures, err := s.computeSalary(helpers.LakhsToRupees(grossLakhs), regime)
	if err != nil {
		return decimal.Zero, err
	}
	return figures.netSalary, nil
}
