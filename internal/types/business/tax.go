package business

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRegime selects a slab schedule and a deduction policy
type TaxRegime string

const (
	RegimeOld TaxRegime = "old"
	RegimeNew TaxRegime = "new"
)

// IsValid reports whether the regime is one of the supported regimes
func (r TaxRegime) IsValid() bool {
	return r == RegimeOld || r == RegimeNew
}

// Title returns the display name, e.g. "Old"
func (r TaxRegime) Title() string {
	switch r {
	case RegimeOld:
		return "Old"
	case RegimeNew:
		return "New"
	default:
		return string(r)
	}
}

// Other returns the opposite regime. Unsupported values map to old.
func (r TaxRegime) Other() TaxRegime {
	if r == RegimeOld {
		return RegimeNew
	}
	return RegimeOld
}

// ParseTaxRegime normalises user input ("OLD", " new ") into a TaxRegime.
// The returned value may still be invalid; callers check IsValid.
func ParseTaxRegime(s string) TaxRegime {
	return TaxRegime(strings.ToLower(strings.TrimSpace(s)))
}

// TaxSlab is one bracket of a progressive schedule.
// A nil UpperBound marks the unbounded top bracket.
type TaxSlab struct {
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `json:"rate"`
}

// Unbounded reports whether this is the top bracket
func (s TaxSlab) Unbounded() bool {
	return s.UpperBound == nil
}

// SlabSchedule is the ordered slab list of one regime
type SlabSchedule struct {
	Regime TaxRegime `json:"regime"`
	Slabs  []TaxSlab `json:"slabs"`
}

// Validate checks the progressive-schedule invariants: strictly increasing
// upper bounds, an unbounded last slab, and non-decreasing rates in [0,1).
func (s SlabSchedule) Validate() error {
	if len(s.Slabs) == 0 {
		return fmt.Errorf("schedule %s has no slabs", s.Regime)
	}

	one := decimal.NewFromInt(1)
	var prevBound, prevRate decimal.Decimal
	for i, slab := range s.Slabs {
		if slab.Rate.IsNegative() || slab.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("schedule %s slab %d: rate %s outside [0,1)", s.Regime, i, slab.Rate)
		}
		if i > 0 && slab.Rate.LessThan(prevRate) {
			return fmt.Errorf("schedule %s slab %d: rate %s below previous rate %s", s.Regime, i, slab.Rate, prevRate)
		}
		last := i == len(s.Slabs)-1
		if slab.Unbounded() != last {
			if last {
				return fmt.Errorf("schedule %s: last slab must be unbounded", s.Regime)
			}
			return fmt.Errorf("schedule %s slab %d: only the last slab may be unbounded", s.Regime, i)
		}
		if !last {
			if !slab.UpperBound.GreaterThan(prevBound) {
				return fmt.Errorf("schedule %s slab %d: upper bound %s not above %s", s.Regime, i, slab.UpperBound, prevBound)
			}
			prevBound = *slab.UpperBound
		}
		prevRate = slab.Rate
	}
	return nil
}

// SlabLineItem is the tax attributed to one slab of a computation
type SlabLineItem struct {
	LowerBound    decimal.Decimal  `json:"lower_bound"`
	UpperBound    *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	TaxAmount     decimal.Decimal  `json:"tax_amount"`
}

// TaxComputation is the result of running income through a slab schedule
type TaxComputation struct {
	Regime        TaxRegime       `json:"regime"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	SlabTax       decimal.Decimal `json:"slab_tax"`
	Cess          decimal.Decimal `json:"cess"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	Breakdown     []SlabLineItem  `json:"breakdown"`
}

// DeductionSet holds the amount claimed under each deduction category.
// Categories a policy does not grant stay zero.
type DeductionSet struct {
	RetirementContribution  decimal.Decimal `json:"retirement_contribution"`
	MedicalInsuranceSelf    decimal.Decimal `json:"medical_insurance_self"`
	MedicalInsuranceParents decimal.Decimal `json:"medical_insurance_parents"`
	PreventiveHealthCheckup decimal.Decimal `json:"preventive_health_checkup"`
	HousingRentExemption    decimal.Decimal `json:"housing_rent_exemption"`
	HousingAllowance        decimal.Decimal `json:"housing_allowance"`
	StandardDeduction       decimal.Decimal `json:"standard_deduction"`
}

// DeductionItem is a labelled deduction amount for display
type DeductionItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Items lists the categories in display order
func (d DeductionSet) Items() []DeductionItem {
	return []DeductionItem{
		{Label: "Retirement Contribution", Amount: d.RetirementContribution},
		{Label: "Medical Insurance (Self)", Amount: d.MedicalInsuranceSelf},
		{Label: "Medical Insurance (Parents)", Amount: d.MedicalInsuranceParents},
		{Label: "Preventive Health Checkup", Amount: d.PreventiveHealthCheckup},
		{Label: "Housing Rent Exemption", Amount: d.HousingRentExemption},
		{Label: "Housing Allowance", Amount: d.HousingAllowance},
		{Label: "Standard Deduction", Amount: d.StandardDeduction},
	}
}

// Total is the sum of all categories
func (d DeductionSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items() {
		total = total.Add(item.Amount)
	}
	return total
}

// TaxAuditTrail contains audit information for tax calculations
type TaxAuditTrail struct {
	RulesVersion string   `json:"rules_version"`
	AppliedRules []string `json:"applied_rules"`
	Notes        []string `json:"notes,omitempty"`
}
