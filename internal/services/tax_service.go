package services

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/logger"
	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/api/responses"
	"github.com/taxwise/taxcalc/internal/types/business"
	"go.uber.org/zap"
)

var monthsPerYear = decimal.NewFromInt(12)

// TaxService computes income tax, net salary, the gross salary needed for a
// target take-home, and presumptive freelancer tax.
//
// All operations accept an explicit regime. The current regime is only a
// fallback for callers that leave it empty and is safe for concurrent use.
type TaxService struct {
	logger     *zap.Logger
	slabs      *SlabCalculator
	deductions *DeductionCalculator
	cfg        *config

	mu            sync.RWMutex
	currentRegime business.TaxRegime
}

// salaryFigures is the full-precision forward calculation shared by the
// public breakdown and the gross search
type salaryFigures struct {
	deductions    business.DeductionSet
	taxableIncome decimal.Decimal
	tax           *business.TaxComputation
	withholding   decimal.Decimal
	netSalary     decimal.Decimal
}

// NewTaxService creates a new tax service
func NewTaxService(opts ...Option) *TaxService {
	cfg := applyOptions(opts)
	if cfg.logger == nil {
		cfg.logger = logger.Log
	}
	if !cfg.defaultRegime.IsValid() {
		cfg.defaultRegime = business.RegimeOld
	}

	return &TaxService{
		logger:        cfg.logger,
		slabs:         NewSlabCalculator(),
		deductions:    NewDeductionCalculator(cfg.rentToBasicRatio),
		cfg:           cfg,
		currentRegime: cfg.defaultRegime,
	}
}

// CurrentRegime returns the regime used when a call leaves the regime empty
func (s *TaxService) CurrentRegime() business.TaxRegime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRegime
}

// SetRegime changes the current regime
func (s *TaxService) SetRegime(regime business.TaxRegime) error {
	if !regime.IsValid() {
		return errors.Wrapf(ErrUnsupportedRegime, "%q", regime)
	}

	s.mu.Lock()
	previous := s.currentRegime
	s.currentRegime = regime
	s.mu.Unlock()

	s.logger.Info("Tax regime changed",
		zap.String("from", string(previous)),
		zap.String("to", string(regime)))
	return nil
}

// ToggleRegime switches between OLD and NEW and returns the new current regime
func (s *TaxService) ToggleRegime() business.TaxRegime {
	s.mu.Lock()
	previous := s.currentRegime
	s.currentRegime = previous.Other()
	next := s.currentRegime
	s.mu.Unlock()

	s.logger.Info("Tax regime toggled",
		zap.String("from", string(previous)),
		zap.String("to", string(next)))
	return next
}

// ResolveRegime returns the explicit regime, or the current regime when empty
func (s *TaxService) ResolveRegime(regime business.TaxRegime) (business.TaxRegime, error) {
	if regime == "" {
		return s.CurrentRegime(), nil
	}
	if !regime.IsValid() {
		return "", errors.Wrapf(ErrUnsupportedRegime, "%q", regime)
	}
	return regime, nil
}

// ComputeTax returns the slab tax plus cess owed on taxable income (base units)
func (s *TaxService) ComputeTax(taxableIncome decimal.Decimal, regime business.TaxRegime) (*business.TaxComputation, error) {
	return s.slabs.Compute(taxableIncome, regime)
}

// ComputeDeductions returns the salaried deductions for a gross salary (base units)
func (s *TaxService) ComputeDeductions(grossSalary decimal.Decimal, regime business.TaxRegime) (business.DeductionSet, error) {
	if grossSalary.IsNegative() {
		return business.DeductionSet{}, errors.Wrapf(ErrInvalidInput, "gross salary %s is negative", grossSalary)
	}
	return s.deductions.Salaried(grossSalary, regime)
}

// CalculateNetSalary performs the forward gross-to-take-home calculation
func (s *TaxService) CalculateNetSalary(ctx context.Context, p params.NetSalaryParams) (*responses.SalaryBreakdown, error) {
	regime, err := s.ResolveRegime(p.Regime)
	if err != nil {
		return nil, err
	}
	if err := helpers.ValidateStruct(p); err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}

	s.logger.Debug("Calculating net salary",
		zap.String("regime", string(regime)),
		zap.String("gross_salary_lakhs", p.GrossSalaryLakhs.String()),
		zap.Bool("apply_deductions", s.cfg.applyDeductions),
		zap.Bool("payroll_withholding", s.cfg.payrollWithholding))

	breakdown, err := s.salaryBreakdown(helpers.LakhsToRupees(p.GrossSalaryLakhs), regime)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Calculated net salary",
		zap.String("calculation_id", breakdown.CalculationID.String()),
		zap.String("tax", breakdown.Tax.TotalTax.String()),
		zap.String("net_salary", breakdown.NetSalary.String()))
	return breakdown, nil
}

// CalculateFreelancerTax computes presumptive taxation on freelance receipts.
// Half the receipts are deemed expenses; the other half is presumptive income.
func (s *TaxService) CalculateFreelancerTax(ctx context.Context, p params.FreelancerTaxParams) (*responses.FreelancerBreakdown, error) {
	regime, err := s.ResolveRegime(p.Regime)
	if err != nil {
		return nil, err
	}
	if err := helpers.ValidateStruct(p); err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}

	s.logger.Debug("Calculating freelancer tax",
		zap.String("regime", string(regime)),
		zap.String("gross_receipts_lakhs", p.GrossReceiptsLakhs.String()))

	receipts := helpers.LakhsToRupees(p.GrossReceiptsLakhs)
	presumptive := receipts.Mul(PresumptiveIncomeRatio)
	expenses := receipts.Sub(presumptive)

	deductions, err := s.deductions.Freelancer(regime)
	if err != nil {
		return nil, err
	}
	taxable := TaxableIncome(presumptive, deductions)

	tax, err := s.slabs.Compute(taxable, regime)
	if err != nil {
		return nil, err
	}
	net := receipts.Sub(tax.TotalTax)

	audit := s.auditTrail(regime)
	audit.AppliedRules = append(audit.AppliedRules, "PRESUMPTIVE_INCOME_50_PERCENT")
	if regime == business.RegimeOld {
		audit.AppliedRules = append(audit.AppliedRules, "FLAT_DEDUCTION_CAPS")
	} else {
		audit.AppliedRules = append(audit.AppliedRules, "STANDARD_DEDUCTION_ONLY")
	}
	if deductions.Total().GreaterThan(presumptive) {
		audit.Notes = append(audit.Notes, "Deductions exceed presumptive income; taxable income floored at zero")
	}

	result := &responses.FreelancerBreakdown{
		CalculationID:     s.cfg.newID(),
		Regime:            regime,
		GrossReceipts:     receipts,
		ExpensesDeemed:    expenses,
		PresumptiveIncome: presumptive,
		Deductions:        deductions,
		TotalDeductions:   deductions.Total(),
		TaxableIncome:     taxable,
		Tax:               *tax,
		NetIncome:         net,
		MonthlyTakeHome:   net.Div(monthsPerYear),
		CalculatedAt:      s.cfg.clock(),
		AuditTrail:        audit,
	}

	s.logger.Debug("Calculated freelancer tax",
		zap.String("calculation_id", result.CalculationID.String()),
		zap.String("tax", result.Tax.TotalTax.String()),
		zap.String("net_income", result.NetIncome.String()))
	return result, nil
}

// computeSalary runs the forward calculation for a gross salary in base units
func (s *TaxService) computeSalary(gross decimal.Decimal, regime business.TaxRegime) (*salaryFigures, error) {
	deductions := business.DeductionSet{}
	if s.cfg.applyDeductions {
		var err error
		deductions, err = s.deductions.Salaried(gross, regime)
		if err != nil {
			return nil, err
		}
	}
	taxable := TaxableIncome(gross, deductions)

	tax, err := s.slabs.Compute(taxable, regime)
	if err != nil {
		return nil, err
	}

	withholding := decimal.Zero
	if s.cfg.payrollWithholding {
		withholding = s.deductions.EmployeeRetirementContribution(gross)
	}

	return &salaryFigures{
		deductions:    deductions,
		taxableIncome: taxable,
		tax:           tax,
		withholding:   withholding,
		netSalary:     gross.Sub(tax.TotalTax).Sub(withholding),
	}, nil
}

func (s *TaxService) salaryBreakdown(gross decimal.Decimal, regime business.TaxRegime) (*responses.SalaryBreakdown, error) {
	figures, err := s.computeSalary(gross, regime)
	if err != nil {
		return nil, err
	}

	audit := s.auditTrail(regime)
	switch {
	case !s.cfg.applyDeductions:
		audit.AppliedRules = append(audit.AppliedRules, "NO_DEDUCTIONS")
	case regime == business.RegimeOld:
		audit.AppliedRules = append(audit.AppliedRules, "SALARIED_DEDUCTIONS_OLD")
		if figures.deductions.HousingRentExemption.IsZero() {
			audit.Notes = append(audit.Notes, "Rent paid does not exceed 10% of basic; housing rent exemption is zero")
		}
	default:
		audit.AppliedRules = append(audit.AppliedRules, "STANDARD_DEDUCTION_ONLY")
	}
	if s.cfg.payrollWithholding {
		audit.AppliedRules = append(audit.AppliedRules, "PAYROLL_RETIREMENT_WITHHOLDING")
	}
	if figures.deductions.Total().GreaterThan(gross) {
		audit.Notes = append(audit.Notes, "Deductions exceed gross salary; taxable income floored at zero")
	}

	return &responses.SalaryBreakdown{
		CalculationID:                  s.cfg.newID(),
		Regime:                         regime,
		GrossSalary:                    gross,
		Deductions:                     figures.deductions,
		TotalDeductions:                figures.deductions.Total(),
		TaxableIncome:                  figures.taxableIncome,
		Tax:                            *figures.tax,
		EmployeeRetirementContribution: figures.withholding,
		NetSalary:                      figures.netSalary,
		MonthlyTakeHome:                figures.netSalary.Div(monthsPerYear),
		CalculatedAt:                   s.cfg.clock(),
		AuditTrail:                     audit,
	}, nil
}

func (s *TaxService) auditTrail(regime business.TaxRegime) business.TaxAuditTrail {
	return business.TaxAuditTrail{
		RulesVersion: RulesVersion,
		AppliedRules: []string{"SLABS_" + upper(regime), "CESS_4_PERCENT"},
		Notes:        []string{},
	}
}

func upper(regime business.TaxRegime) string {
	if regime == business.RegimeNew {
		return "NEW"
	}
	return "OLD"
}
