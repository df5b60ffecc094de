package services

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// Salary structure and deduction caps, in base currency units where applicable.
var (
	BasicSalaryRatio       = decimal.RequireFromString("0.50")
	HousingAllowanceRatio  = decimal.RequireFromString("0.40") // of basic
	RetirementRate         = decimal.RequireFromString("0.12") // of basic
	RetirementCap          = decimal.NewFromInt(150000)
	MedicalInsuranceSelf   = decimal.NewFromInt(25000)
	MedicalInsuranceParent = decimal.NewFromInt(50000)
	PreventiveCheckupCap   = decimal.NewFromInt(5000)
	StandardDeductionCap   = decimal.NewFromInt(50000)
	FreelancerHousingCap   = decimal.NewFromInt(60000)
	PresumptiveIncomeRatio = decimal.RequireFromString("0.50")

	// DefaultRentToBasicRatio is the notional annual rent paid, as a fraction of basic
	DefaultRentToBasicRatio = decimal.RequireFromString("0.40")

	rentExemptionBasicCap    = decimal.RequireFromString("0.50")
	rentExemptionBasicOffset = decimal.RequireFromString("0.10")
)

// DeductionCalculator models the simplified salary structure used to derive
// deductions for each regime
type DeductionCalculator struct {
	rentToBasicRatio decimal.Decimal
}

// NewDeductionCalculator creates a deduction calculator. A negative rent
// ratio is treated as zero rent.
func NewDeductionCalculator(rentToBasicRatio decimal.Decimal) *DeductionCalculator {
	if rentToBasicRatio.IsNegative() {
		rentToBasicRatio = decimal.Zero
	}
	return &DeductionCalculator{rentToBasicRatio: rentToBasicRatio}
}

// BasicSalary is 50% of gross
func (c *DeductionCalculator) BasicSalary(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(BasicSalaryRatio)
}

// EmployeeRetirementContribution is the mandatory payroll withholding (12% of
// basic, uncapped). It reduces cash received, not taxable income.
func (c *DeductionCalculator) EmployeeRetirementContribution(gross decimal.Decimal) decimal.Decimal {
	return c.BasicSalary(gross).Mul(RetirementRate)
}

// Salaried returns the deductions a salaried employee claims under the regime.
// NEW regime grants only the standard deduction.
func (c *DeductionCalculator) Salaried(gross decimal.Decimal, regime business.TaxRegime) (business.DeductionSet, error) {
	standard := decimal.Min(StandardDeductionCap, decimal.Max(gross, decimal.Zero))

	switch regime {
	case business.RegimeNew:
		return business.DeductionSet{StandardDeduction: standard}, nil
	case business.RegimeOld:
	default:
		return business.DeductionSet{}, errors.Wrapf(ErrUnsupportedRegime, "%q", regime)
	}

	basic := c.BasicSalary(gross)
	allowance := basic.Mul(HousingAllowanceRatio)
	rentPaid := basic.Mul(c.rentToBasicRatio)

	return business.DeductionSet{
		RetirementContribution:  decimal.Min(RetirementCap, basic.Mul(RetirementRate)),
		MedicalInsuranceSelf:    MedicalInsuranceSelf,
		MedicalInsuranceParents: MedicalInsuranceParent,
		PreventiveHealthCheckup: PreventiveCheckupCap,
		HousingRentExemption:    HousingRentExemption(allowance, basic, rentPaid),
		StandardDeduction:       standard,
	}, nil
}

// Freelancer returns the flat-capped deductions applied to presumptive income.
// NEW regime grants only the standard deduction.
func (c *DeductionCalculator) Freelancer(regime business.TaxRegime) (business.DeductionSet, error) {
	switch regime {
	case business.RegimeNew:
		return business.DeductionSet{StandardDeduction: StandardDeductionCap}, nil
	case business.RegimeOld:
		return business.DeductionSet{
			RetirementContribution:  RetirementCap,
			MedicalInsuranceSelf:    MedicalInsuranceSelf,
			MedicalInsuranceParents: MedicalInsuranceParent,
			PreventiveHealthCheckup: PreventiveCheckupCap,
			HousingAllowance:        FreelancerHousingCap,
			StandardDeduction:       StandardDeductionCap,
		}, nil
	default:
		return business.DeductionSet{}, errors.Wrapf(ErrUnsupportedRegime, "%q", regime)
	}
}

// HousingRentExemption is the least of the allowance received, 50% of basic,
// and rent paid minus 10% of basic, floored at zero when rent is too low.
func HousingRentExemption(allowance, basic, rentPaid decimal.Decimal) decimal.Decimal {
	exemption := decimal.Min(
		allowance,
		basic.Mul(rentExemptionBasicCap),
		rentPaid.Sub(basic.Mul(rentExemptionBasicOffset)),
	)
	if exemption.IsNegative() {
		return decimal.Zero
	}
	return exemption
}

// TaxableIncome is gross minus deductions, floored at zero
func TaxableIncome(gross decimal.Decimal, deductions business.DeductionSet) decimal.Decimal {
	taxable := gross.Sub(deductions.Total())
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}
