package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxwise/taxcalc/internal/interfaces"
	"github.com/taxwise/taxcalc/internal/logger"
	"github.com/taxwise/taxcalc/internal/services"
	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/business"
)

var _ interfaces.TaxService = (*services.TaxService)(nil)

func init() {
	logger.InitLogger("test")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, expected.Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual}, msgAndArgs...)...)
}

func TestTaxService_ComputeTax(t *testing.T) {
	service := services.NewTaxService()

	tests := []struct {
		name        string
		income      string
		regime      business.TaxRegime
		expectedTax string
		slabsUsed   int
		wantErr     error
	}{
		{name: "zero income", income: "0", regime: business.RegimeOld, expectedTax: "0", slabsUsed: 0},
		{name: "negative income", income: "-1000", regime: business.RegimeNew, expectedTax: "0", slabsUsed: 0},
		{name: "old regime inside exempt slab", income: "250000", regime: business.RegimeOld, expectedTax: "0", slabsUsed: 1},
		{name: "old regime on 5 lakh boundary", income: "500000", regime: business.RegimeOld, expectedTax: "13000", slabsUsed: 2},
		{name: "old regime on 10 lakh boundary", income: "1000000", regime: business.RegimeOld, expectedTax: "117000", slabsUsed: 3},
		{name: "old regime top slab", income: "1200000", regime: business.RegimeOld, expectedTax: "179400", slabsUsed: 4},
		{name: "new regime inside exempt slab", income: "300000", regime: business.RegimeNew, expectedTax: "0", slabsUsed: 1},
		{name: "new regime on 7 lakh boundary", income: "700000", regime: business.RegimeNew, expectedTax: "20800", slabsUsed: 2},
		{name: "new regime 16 lakh", income: "1600000", regime: business.RegimeNew, expectedTax: "176800", slabsUsed: 6},
		{name: "unsupported regime", income: "500000", regime: "flat", wantErr: services.ErrUnsupportedRegime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.ComputeTax(dec(tt.income), tt.regime)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assertDecimal(t, dec(tt.expectedTax), result.TotalTax)
			assertDecimal(t, result.SlabTax.Add(result.Cess), result.TotalTax)
			assertDecimal(t, result.SlabTax.Mul(services.CessRate), result.Cess)
			assert.Len(t, result.Breakdown, tt.slabsUsed)
		})
	}
}

func TestTaxService_ComputeTax_BoundaryTieBreak(t *testing.T) {
	service := services.NewTaxService()

	result, err := service.ComputeTax(dec("500000"), business.RegimeOld)
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 2)
	assertDecimal(t, dec("250000"), result.Breakdown[1].TaxableAmount)
	assertDecimal(t, dec("0.05"), result.Breakdown[1].Rate)
	assertDecimal(t, dec("12500"), result.SlabTax)
	for _, item := range result.Breakdown {
		assert.False(t, item.Rate.Equal(dec("0.20")), "20%% bracket must not contribute at 500000")
	}
}

func TestTaxService_ComputeTax_NewRegimeTopSlab(t *testing.T) {
	service := services.NewTaxService()

	result, err := service.ComputeTax(dec("1600000"), business.RegimeNew)
	require.NoError(t, err)

	top := result.Breakdown[len(result.Breakdown)-1]
	assert.True(t, top.UpperBound == nil)
	assertDecimal(t, dec("1500000"), top.LowerBound)
	assertDecimal(t, dec("100000"), top.TaxableAmount)
	assertDecimal(t, dec("30000"), top.TaxAmount)
}

func TestTaxService_ComputeTax_Monotonic(t *testing.T) {
	service := services.NewTaxService()
	step := dec("12500")

	for _, regime := range []business.TaxRegime{business.RegimeOld, business.RegimeNew} {
		previous := decimal.Zero
		for income := decimal.Zero; income.LessThanOrEqual(dec("3000000")); income = income.Add(step) {
			result, err := service.ComputeTax(income, regime)
			require.NoError(t, err)
			assert.True(t, result.TotalTax.GreaterThanOrEqual(previous),
				"%s regime tax decreased at income %s", regime, income)
			previous = result.TotalTax
		}
	}
}

func TestTaxService_ComputeDeductions(t *testing.T) {
	service := services.NewTaxService()

	tests := []struct {
		name          string
		gross         string
		regime        business.TaxRegime
		expectedTotal string
		expectedHRA   string
		wantErr       error
	}{
		{
			// basic 500000; retirement 60000; medical 80000; HRA min(200000, 250000, 150000); standard 50000
			name:          "old regime 10 lakh",
			gross:         "1000000",
			regime:        business.RegimeOld,
			expectedTotal: "340000",
			expectedHRA:   "150000",
		},
		{
			// retirement capped at 150000
			name:          "old regime 30 lakh",
			gross:         "3000000",
			regime:        business.RegimeOld,
			expectedTotal: "730000",
			expectedHRA:   "450000",
		},
		{
			name:          "new regime standard deduction only",
			gross:         "1000000",
			regime:        business.RegimeNew,
			expectedTotal: "50000",
			expectedHRA:   "0",
		},
		{
			name:          "standard deduction limited to gross",
			gross:         "30000",
			regime:        business.RegimeNew,
			expectedTotal: "30000",
			expectedHRA:   "0",
		},
		{name: "negative gross", gross: "-1", regime: business.RegimeOld, wantErr: services.ErrInvalidInput},
		{name: "unsupported regime", gross: "1000000", regime: "OLD", wantErr: services.ErrUnsupportedRegime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deductions, err := service.ComputeDeductions(dec(tt.gross), tt.regime)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assertDecimal(t, dec(tt.expectedTotal), deductions.Total())
			assertDecimal(t, dec(tt.expectedHRA), deductions.HousingRentExemption)
		})
	}
}

func TestTaxService_CalculateNetSalary(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	fixedID := uuid.MustParse("6f1c1c2e-1a4d-4c55-9a3e-2d6f0a0b9e11")

	tests := []struct {
		name             string
		opts             []services.Option
		params           params.NetSalaryParams
		expectedRegime   business.TaxRegime
		expectedTaxable  string
		expectedTax      string
		expectedNet      string
		expectedMonthly  string
		expectedRules    []string
		expectedWithheld string
		wantErr          error
	}{
		{
			name:            "old regime with deductions",
			params:          params.NetSalaryParams{GrossSalaryLakhs: dec("10"), Regime: business.RegimeOld},
			expectedRegime:  business.RegimeOld,
			expectedTaxable: "660000",
			expectedTax:     "46280",
			expectedNet:     "953720",
			expectedMonthly: "0.79",
			expectedRules:   []string{"SLABS_OLD", "CESS_4_PERCENT", "SALARIED_DEDUCTIONS_OLD"},
		},
		{
			name:            "new regime with standard deduction",
			params:          params.NetSalaryParams{GrossSalaryLakhs: dec("10"), Regime: business.RegimeNew},
			expectedRegime:  business.RegimeNew,
			expectedTaxable: "950000",
			expectedTax:     "46800",
			expectedNet:     "953200",
			expectedMonthly: "0.79",
			expectedRules:   []string{"SLABS_NEW", "CESS_4_PERCENT", "STANDARD_DEDUCTION_ONLY"},
		},
		{
			name:            "old regime without deductions",
			opts:            []services.Option{services.WithDeductions(false)},
			params:          params.NetSalaryParams{GrossSalaryLakhs: dec("10"), Regime: business.RegimeOld},
			expectedRegime:  business.RegimeOld,
			expectedTaxable: "1000000",
			expectedTax:     "117000",
			expectedNet:     "883000",
			expectedMonthly: "0.74",
			expectedRules:   []string{"SLABS_OLD", "CESS_4_PERCENT", "NO_DEDUCTIONS"},
		},
		{
			name:             "payroll withholding reduces cash",
			opts:             []services.Option{services.WithPayrollWithholding(true)},
			params:           params.NetSalaryParams{GrossSalaryLakhs: dec("10"), Regime: business.RegimeOld},
			expectedRegime:   business.RegimeOld,
			expectedTaxable:  "660000",
			expectedTax:      "46280",
			expectedNet:      "893720",
			expectedMonthly:  "0.74",
			expectedWithheld: "60000",
			expectedRules:    []string{"SLABS_OLD", "CESS_4_PERCENT", "SALARIED_DEDUCTIONS_OLD", "PAYROLL_RETIREMENT_WITHHOLDING"},
		},
		{
			name:            "empty regime falls back to current regime",
			opts:            []services.Option{services.WithDefaultRegime(business.RegimeNew)},
			params:          params.NetSalaryParams{GrossSalaryLakhs: dec("10")},
			expectedRegime:  business.RegimeNew,
			expectedTaxable: "950000",
			expectedTax:     "46800",
			expectedNet:     "953200",
			expectedMonthly: "0.79",
			expectedRules:   []string{"SLABS_NEW", "CESS_4_PERCENT", "STANDARD_DEDUCTION_ONLY"},
		},
		{
			name:    "gross below minimum",
			params:  params.NetSalaryParams{GrossSalaryLakhs: dec("0.05"), Regime: business.RegimeOld},
			wantErr: services.ErrInvalidInput,
		},
		{
			name:    "gross above maximum",
			params:  params.NetSalaryParams{GrossSalaryLakhs: dec("1000.5"), Regime: business.RegimeOld},
			wantErr: services.ErrInvalidInput,
		},
		{
			name:    "unsupported regime",
			params:  params.NetSalaryParams{GrossSalaryLakhs: dec("10"), Regime: "flat"},
			wantErr: services.ErrUnsupportedRegime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]services.Option{
				services.WithClock(func() time.Time { return fixedTime }),
				services.WithIDGenerator(func() uuid.UUID { return fixedID }),
			}, tt.opts...)
			service := services.NewTaxService(opts...)

			result, err := service.CalculateNetSalary(ctx, tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedRegime, result.Regime)
			assertDecimal(t, dec(tt.expectedTaxable), result.TaxableIncome)
			assertDecimal(t, dec(tt.expectedTax), result.Tax.TotalTax)
			assertDecimal(t, dec(tt.expectedNet), result.NetSalary)
			assertDecimal(t, dec(tt.expectedNet).Div(decimal.NewFromInt(12)), result.MonthlyTakeHome)
			assertDecimal(t, dec(tt.expectedMonthly), result.Lakhs().MonthlyTakeHomeLakhs)
			if tt.expectedWithheld != "" {
				assertDecimal(t, dec(tt.expectedWithheld), result.EmployeeRetirementContribution)
			} else {
				assert.True(t, result.EmployeeRetirementContribution.IsZero())
			}

			assert.Equal(t, fixedID, result.CalculationID)
			assert.Equal(t, fixedTime, result.CalculatedAt)
			assert.Equal(t, services.RulesVersion, result.AuditTrail.RulesVersion)
			assert.Equal(t, tt.expectedRules, result.AuditTrail.AppliedRules)
		})
	}
}

func TestTaxService_CalculateNetSalary_Monotonic(t *testing.T) {
	ctx := context.Background()

	for _, withDeductions := range []bool{true, false} {
		service := services.NewTaxService(services.WithDeductions(withDeductions))
		for _, regime := range []business.TaxRegime{business.RegimeOld, business.RegimeNew} {
			previous := decimal.Zero
			for gross := dec("1"); gross.LessThanOrEqual(dec("60")); gross = gross.Add(dec("0.25")) {
				result, err := service.CalculateNetSalary(ctx, params.NetSalaryParams{GrossSalaryLakhs: gross, Regime: regime})
				require.NoError(t, err)
				assert.True(t, result.NetSalary.GreaterThanOrEqual(previous),
					"net salary decreased at gross %s lakh (%s regime, deductions=%t)", gross, regime, withDeductions)
				previous = result.NetSalary
			}
		}
	}
}

func TestTaxService_CalculateFreelancerTax(t *testing.T) {
	ctx := context.Background()
	service := services.NewTaxService()

	tests := []struct {
		name            string
		params          params.FreelancerTaxParams
		expectedTaxable string
		expectedTax     string
		expectedNet     string
		expectedRule    string
		wantErr         error
	}{
		{
			// presumptive 1000000 less flat caps of 340000
			name:            "old regime 20 lakh receipts",
			params:          params.FreelancerTaxParams{GrossReceiptsLakhs: dec("20"), Regime: business.RegimeOld},
			expectedTaxable: "660000",
			expectedTax:     "46280",
			expectedNet:     "1953720",
			expectedRule:    "FLAT_DEDUCTION_CAPS",
		},
		{
			name:            "new regime 20 lakh receipts",
			params:          params.FreelancerTaxParams{GrossReceiptsLakhs: dec("20"), Regime: business.RegimeNew},
			expectedTaxable: "950000",
			expectedTax:     "46800",
			expectedNet:     "1953200",
			expectedRule:    "STANDARD_DEDUCTION_ONLY",
		},
		{
			name:            "deductions exceed presumptive income",
			params:          params.FreelancerTaxParams{GrossReceiptsLakhs: dec("5"), Regime: business.RegimeOld},
			expectedTaxable: "0",
			expectedTax:     "0",
			expectedNet:     "500000",
			expectedRule:    "FLAT_DEDUCTION_CAPS",
		},
		{
			name:    "receipts below minimum",
			params:  params.FreelancerTaxParams{GrossReceiptsLakhs: dec("0"), Regime: business.RegimeOld},
			wantErr: services.ErrInvalidInput,
		},
		{
			name:    "unsupported regime",
			params:  params.FreelancerTaxParams{GrossReceiptsLakhs: dec("20"), Regime: "flat"},
			wantErr: services.ErrUnsupportedRegime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.CalculateFreelancerTax(ctx, tt.params)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			receipts := tt.params.GrossReceiptsLakhs.Shift(5)
			assertDecimal(t, receipts.Mul(dec("0.5")), result.PresumptiveIncome)
			assertDecimal(t, receipts.Sub(result.PresumptiveIncome), result.ExpensesDeemed)
			assertDecimal(t, dec(tt.expectedTaxable), result.TaxableIncome)
			assertDecimal(t, dec(tt.expectedTax), result.Tax.TotalTax)
			assertDecimal(t, dec(tt.expectedNet), result.NetIncome)
			assert.Contains(t, result.AuditTrail.AppliedRules, "PRESUMPTIVE_INCOME_50_PERCENT")
			assert.Contains(t, result.AuditTrail.AppliedRules, tt.expectedRule)
		})
	}
}

func TestTaxService_Regime(t *testing.T) {
	service := services.NewTaxService()
	assert.Equal(t, business.RegimeOld, service.CurrentRegime())

	assert.Equal(t, business.RegimeNew, service.ToggleRegime())
	assert.Equal(t, business.RegimeNew, service.CurrentRegime())
	assert.Equal(t, business.RegimeOld, service.ToggleRegime())

	require.NoError(t, service.SetRegime(business.RegimeNew))
	assert.Equal(t, business.RegimeNew, service.CurrentRegime())

	err := service.SetRegime("both")
	assert.True(t, errors.Is(err, services.ErrUnsupportedRegime))
	assert.Equal(t, business.RegimeNew, service.CurrentRegime())

	regime, err := service.ResolveRegime("")
	require.NoError(t, err)
	assert.Equal(t, business.RegimeNew, regime)

	regime, err = service.ResolveRegime(business.RegimeOld)
	require.NoError(t, err)
	assert.Equal(t, business.RegimeOld, regime)
}

func TestTaxService_ExplicitRegimeIgnoresCurrent(t *testing.T) {
	ctx := context.Background()
	service := services.NewTaxService(services.WithDefaultRegime(business.RegimeNew))

	result, err := service.CalculateNetSalary(ctx, params.NetSalaryParams{GrossSalaryLakhs: dec("10"), Regime: business.RegimeOld})
	require.NoError(t, err)
	assert.Equal(t, business.RegimeOld, result.Regime)
	assert.Equal(t, business.RegimeNew, service.CurrentRegime())
}
