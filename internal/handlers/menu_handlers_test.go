package handlers_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxwise/taxcalc/internal/constants"
	"github.com/taxwise/taxcalc/internal/handlers"
	"github.com/taxwise/taxcalc/internal/logger"
	"github.com/taxwise/taxcalc/internal/mocks"
	"github.com/taxwise/taxcalc/internal/services"
	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/api/responses"
	"github.com/taxwise/taxcalc/internal/types/business"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func salaryBreakdown(regime business.TaxRegime, net string) *responses.SalaryBreakdown {
	netSalary := dec(net)
	return &responses.SalaryBreakdown{
		CalculationID:   uuid.New(),
		Regime:          regime,
		GrossSalary:     dec("1000000"),
		TotalDeductions: dec("340000"),
		TaxableIncome:   dec("660000"),
		Deductions: business.DeductionSet{
			StandardDeduction: dec("50000"),
		},
		Tax: business.TaxComputation{
			Regime:   regime,
			SlabTax:  dec("44500"),
			Cess:     dec("1780"),
			TotalTax: dec("46280"),
			Breakdown: []business.SlabLineItem{
				{LowerBound: dec("0"), Rate: dec("0"), TaxableAmount: dec("250000"), TaxAmount: dec("0")},
			},
		},
		NetSalary:       netSalary,
		MonthlyTakeHome: netSalary.Div(decimal.NewFromInt(12)),
	}
}

func newMenu(t *testing.T, input string) (*handlers.MenuHandler, *mocks.MockTaxService, *bytes.Buffer) {
	t.Helper()
	mockService := mocks.NewMockTaxServiceForTest(t)
	out := &bytes.Buffer{}
	common := handlers.NewCommonServices(handlers.CommonServicesConfig{
		TaxService: mockService,
		Out:        out,
	})
	return handlers.NewMenuHandler(common, strings.NewReader(input)), mockService, out
}

func TestMenuHandler_Run(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		setupMocks     func(m *mocks.MockTaxService)
		expectedOutput []string
	}{
		{
			name:           "exit from regime selection",
			input:          "3\n",
			setupMocks:     func(m *mocks.MockTaxService) {},
			expectedOutput: []string{"Select Tax Regime:", constants.Goodbye},
		},
		{
			name:           "end of input",
			input:          "",
			setupMocks:     func(m *mocks.MockTaxService) {},
			expectedOutput: []string{constants.Goodbye},
		},
		{
			name:       "invalid regime choices re-prompt",
			input:      "9\nabc\n3\n",
			setupMocks: func(m *mocks.MockTaxService) {},
			expectedOutput: []string{
				"please enter a number between 1 and 3",
				constants.Goodbye,
			},
		},
		{
			name:  "net salary with regime comparison",
			input: "1\n1\n10\n\n5\n3\n",
			setupMocks: func(m *mocks.MockTaxService) {
				m.EXPECT().SetRegime(business.RegimeOld).Return(nil)
				m.EXPECT().CurrentRegime().Return(business.RegimeOld).AnyTimes()
				m.EXPECT().CalculateNetSalary(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p params.NetSalaryParams) (*responses.SalaryBreakdown, error) {
						assert.True(t, dec("10").Equal(p.GrossSalaryLakhs))
						assert.Equal(t, business.RegimeOld, p.Regime)
						return salaryBreakdown(business.RegimeOld, "953720"), nil
					})
				m.EXPECT().CalculateNetSalary(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p params.NetSalaryParams) (*responses.SalaryBreakdown, error) {
						assert.Equal(t, business.RegimeNew, p.Regime)
						return salaryBreakdown(business.RegimeNew, "953200"), nil
					})
			},
			expectedOutput: []string{
				"Old Tax Regime Options",
				"Net Salary Calculation (Old Regime)",
				"Net Salary: ₹9.54 Lakhs",
				"Monthly Take Home: ₹0.79 Lakhs",
				"Standard Deduction",
				"₹50,000.00",
				"Total Tax: ₹46,280.00",
				"Monthly take-home under New Regime: ₹0.79 Lakhs",
				constants.PressEnterToProceed,
				constants.Goodbye,
			},
		},
		{
			name:  "invalid main menu choice re-prompts",
			input: "2\n7\n5\n3\n",
			setupMocks: func(m *mocks.MockTaxService) {
				m.EXPECT().SetRegime(business.RegimeNew).Return(nil)
				m.EXPECT().CurrentRegime().Return(business.RegimeNew).AnyTimes()
			},
			expectedOutput: []string{
				"New Tax Regime Options",
				"please enter a number between 1 and 5",
				constants.Goodbye,
			},
		},
		{
			name:  "toggle regime",
			input: "1\n4\n\n",
			setupMocks: func(m *mocks.MockTaxService) {
				m.EXPECT().SetRegime(business.RegimeOld).Return(nil)
				m.EXPECT().CurrentRegime().Return(business.RegimeOld).AnyTimes()
				m.EXPECT().ToggleRegime().Return(business.RegimeNew)
			},
			expectedOutput: []string{
				"Current Regime: Old",
				"Regime changed to New Tax Regime.",
				constants.Goodbye,
			},
		},
		{
			name:  "amount re-prompt for freelancer receipts",
			input: "2\n3\nabc\n5000\n20\n",
			setupMocks: func(m *mocks.MockTaxService) {
				m.EXPECT().SetRegime(business.RegimeNew).Return(nil)
				m.EXPECT().CurrentRegime().Return(business.RegimeNew).AnyTimes()
				m.EXPECT().CalculateFreelancerTax(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p params.FreelancerTaxParams) (*responses.FreelancerBreakdown, error) {
						assert.True(t, dec("20").Equal(p.GrossReceiptsLakhs))
						return &responses.FreelancerBreakdown{
							Regime:            business.RegimeNew,
							GrossReceipts:     dec("2000000"),
							ExpensesDeemed:    dec("1000000"),
							PresumptiveIncome: dec("1000000"),
							TotalDeductions:   dec("50000"),
							TaxableIncome:     dec("950000"),
							Tax:               business.TaxComputation{TotalTax: dec("46800")},
							NetIncome:         dec("1953200"),
							MonthlyTakeHome:   dec("162766.67"),
						}, nil
					})
			},
			expectedOutput: []string{
				"Freelancer Tax Calculation - Section 44ADA (New Regime)",
				constants.NotANumber,
				"please enter a number between 0.1 and 1000",
				"Presumptive Income: ₹10.00 Lakhs",
				"Net Income: ₹19.53 Lakhs",
				constants.Goodbye,
			},
		},
		{
			name:  "unreachable target is reported and the menu continues",
			input: "1\n2\n100\n\n5\n3\n",
			setupMocks: func(m *mocks.MockTaxService) {
				m.EXPECT().SetRegime(business.RegimeOld).Return(nil)
				m.EXPECT().CurrentRegime().Return(business.RegimeOld).AnyTimes()
				m.EXPECT().FindGrossForTargetTakeHome(gomock.Any(), gomock.Any()).Return(nil, &services.SearchBoundsError{
					TargetMonthly:   dec("100"),
					MinMonthly:      dec("0.08"),
					MaxMonthly:      dec("57.86"),
					LowerGrossLakhs: dec("1"),
					UpperGrossLakhs: dec("1000"),
				})
			},
			expectedOutput: []string{
				"Gross Salary Determination (Old Regime)",
				"target take-home cannot be reached with a gross salary between 1 and 1000 lakh",
				"₹57.86 Lakhs",
				constants.Goodbye,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService, out := newMenu(t, tt.input)
			tt.setupMocks(mockService)

			err := handler.Run(context.Background())
			require.NoError(t, err)

			for _, expected := range tt.expectedOutput {
				assert.Contains(t, out.String(), expected)
			}
		})
	}
}

func TestMenuHandler_Run_CancelledContext(t *testing.T) {
	handler, _, _ := newMenu(t, "1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
