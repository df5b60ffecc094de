package services

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// SlabCalculator runs taxable income through a regime's progressive schedule
type SlabCalculator struct {
	schedules map[business.TaxRegime]business.SlabSchedule
	cessRate  decimal.Decimal
}

// NewSlabCalculator creates a slab calculator with the OLD and NEW schedules.
// It panics if a built-in schedule violates the progressive invariants.
func NewSlabCalculator() *SlabCalculator {
	calc := &SlabCalculator{
		schedules: make(map[business.TaxRegime]business.SlabSchedule, 2),
		cessRate:  CessRate,
	}
	for _, schedule := range []business.SlabSchedule{OldRegimeSchedule(), NewRegimeSchedule()} {
		if err := schedule.Validate(); err != nil {
			panic("invalid slab schedule: " + err.Error())
		}
		calc.schedules[schedule.Regime] = schedule
	}
	return calc
}

// Schedule returns the slab schedule for a regime
func (c *SlabCalculator) Schedule(regime business.TaxRegime) (business.SlabSchedule, error) {
	schedule, ok := c.schedules[regime]
	if !ok {
		return business.SlabSchedule{}, errors.Wrapf(ErrUnsupportedRegime, "%q", regime)
	}
	return schedule, nil
}

// Compute returns slab tax, cess and total tax for the taxable income.
//
// The portion of income taxed in a slab is min(income, upper) - previous upper,
// floored at zero. The walk stops at the first slab whose upper bound is >= the
// income, so income exactly on a boundary is taxed entirely in the lower bracket.
func (c *SlabCalculator) Compute(taxableIncome decimal.Decimal, regime business.TaxRegime) (*business.TaxComputation, error) {
	schedule, err := c.Schedule(regime)
	if err != nil {
		return nil, err
	}

	result := &business.TaxComputation{
		Regime:        regime,
		TaxableIncome: taxableIncome,
		SlabTax:       decimal.Zero,
		Cess:          decimal.Zero,
		TotalTax:      decimal.Zero,
		Breakdown:     []business.SlabLineItem{},
	}
	if !taxableIncome.IsPositive() {
		return result, nil
	}

	slabTax := decimal.Zero
	prevBoundary := decimal.Zero
	for _, slab := range schedule.Slabs {
		top := taxableIncome
		if !slab.Unbounded() && slab.UpperBound.LessThan(taxableIncome) {
			top = *slab.UpperBound
		}

		amount := top.Sub(prevBoundary)
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		tax := amount.Mul(slab.Rate)
		slabTax = slabTax.Add(tax)

		result.Breakdown = append(result.Breakdown, business.SlabLineItem{
			LowerBound:    prevBoundary,
			UpperBound:    copyBound(slab.UpperBound),
			Rate:          slab.Rate,
			TaxableAmount: amount,
			TaxAmount:     tax,
		})

		if slab.Unbounded() || taxableIncome.LessThanOrEqual(*slab.UpperBound) {
			break
		}
		prevBoundary = *slab.UpperBound
	}

	cess := slabTax.Mul(c.cessRate)
	result.SlabTax = slabTax
	result.Cess = cess
	result.TotalTax = slabTax.Add(cess)
	return result, nil
}

func copyBound(bound *decimal.Decimal) *decimal.Decimal {
	if bound == nil {
		return nil
	}
	b := *bound
	return &b
}
