package params

import (
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// NetSalaryParams contains parameters for the forward salary calculation.
// An empty Regime falls back to the engine's current regime.
type NetSalaryParams struct {
	GrossSalaryLakhs decimal.Decimal    `json:"gross_salary_lakhs" validate:"decimal_gte=0.1,decimal_lte=1000"`
	Regime           business.TaxRegime `json:"regime,omitempty"`
}

// TargetTakeHomeParams contains parameters for the gross-salary search
type TargetTakeHomeParams struct {
	TargetMonthlyTakeHomeLakhs decimal.Decimal    `json:"target_monthly_take_home_lakhs" validate:"decimal_gt=0,decimal_lte=100"`
	Regime                     business.TaxRegime `json:"regime,omitempty"`
}

// FreelancerTaxParams contains parameters for presumptive taxation
type FreelancerTaxParams struct {
	GrossReceiptsLakhs decimal.Decimal    `json:"gross_receipts_lakhs" validate:"decimal_gte=0.1,decimal_lte=1000"`
	Regime             business.TaxRegime `json:"regime,omitempty"`
}
