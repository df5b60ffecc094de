package responses

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// Row is one labelled lakh amount of a display view
type Row struct {
	Label string
	Lakhs decimal.Decimal
}

// SalaryBreakdown is the forward salary calculation. Amounts are in base
// currency units at full precision; use Lakhs for display.
type SalaryBreakdown struct {
	CalculationID                  uuid.UUID               `json:"calculation_id"`
	Regime                         business.TaxRegime      `json:"regime"`
	GrossSalary                    decimal.Decimal         `json:"gross_salary"`
	Deductions                     business.DeductionSet   `json:"deductions"`
	TotalDeductions                decimal.Decimal         `json:"total_deductions"`
	TaxableIncome                  decimal.Decimal         `json:"taxable_income"`
	Tax                            business.TaxComputation `json:"tax"`
	EmployeeRetirementContribution decimal.Decimal         `json:"employee_retirement_contribution"`
	NetSalary                      decimal.Decimal         `json:"net_salary"`
	MonthlyTakeHome                decimal.Decimal         `json:"monthly_take_home"`
	CalculatedAt                   time.Time               `json:"calculated_at"`
	AuditTrail                     business.TaxAuditTrail  `json:"audit_trail"`
}

// SalaryBreakdownLakhs is the display view of a SalaryBreakdown
type SalaryBreakdownLakhs struct {
	Regime                     business.TaxRegime `json:"regime"`
	GrossSalaryLakhs           decimal.Decimal    `json:"gross_salary_lakhs"`
	DeductionsLakhs            decimal.Decimal    `json:"deductions_lakhs"`
	TaxableIncomeLakhs         decimal.Decimal    `json:"taxable_income_lakhs"`
	TaxLakhs                   decimal.Decimal    `json:"tax_lakhs"`
	RetirementWithholdingLakhs decimal.Decimal    `json:"retirement_withholding_lakhs"`
	NetSalaryLakhs             decimal.Decimal    `json:"net_salary_lakhs"`
	MonthlyTakeHomeLakhs       decimal.Decimal    `json:"monthly_take_home_lakhs"`
}

// Lakhs converts the breakdown to lakh units rounded to 2 decimal places
func (b *SalaryBreakdown) Lakhs() SalaryBreakdownLakhs {
	return SalaryBreakdownLakhs{
		Regime:                     b.Regime,
		GrossSalaryLakhs:           helpers.DisplayLakhs(b.GrossSalary),
		DeductionsLakhs:            helpers.DisplayLakhs(b.TotalDeductions),
		TaxableIncomeLakhs:         helpers.DisplayLakhs(b.TaxableIncome),
		TaxLakhs:                   helpers.DisplayLakhs(b.Tax.TotalTax),
		RetirementWithholdingLakhs: helpers.DisplayLakhs(b.EmployeeRetirementContribution),
		NetSalaryLakhs:             helpers.DisplayLakhs(b.NetSalary),
		MonthlyTakeHomeLakhs:       helpers.DisplayLakhs(b.MonthlyTakeHome),
	}
}

// Rows lists the display fields in print order
func (v SalaryBreakdownLakhs) Rows() []Row {
	rows := []Row{
		{Label: "Gross Salary", Lakhs: v.GrossSalaryLakhs},
		{Label: "Deductions", Lakhs: v.DeductionsLakhs},
		{Label: "Taxable Income", Lakhs: v.TaxableIncomeLakhs},
		{Label: "Tax", Lakhs: v.TaxLakhs},
	}
	if !v.RetirementWithholdingLakhs.IsZero() {
		rows = append(rows, Row{Label: "Retirement Withholding", Lakhs: v.RetirementWithholdingLakhs})
	}
	return append(rows,
		Row{Label: "Net Salary", Lakhs: v.NetSalaryLakhs},
		Row{Label: "Monthly Take Home", Lakhs: v.MonthlyTakeHomeLakhs},
	)
}

// GrossSearchResult is the outcome of the gross-salary bisection. The embedded
// breakdown is evaluated at the final upper bound of the search interval.
type GrossSearchResult struct {
	SalaryBreakdown
	TargetMonthlyTakeHome decimal.Decimal `json:"target_monthly_take_home"`
	Iterations            int             `json:"iterations"`
	ToleranceLakhs        decimal.Decimal `json:"tolerance_lakhs"`
}

// GrossSearchResultLakhs is the display view of a GrossSearchResult
type GrossSearchResultLakhs struct {
	SalaryBreakdownLakhs
	TargetMonthlyTakeHomeLakhs decimal.Decimal `json:"target_monthly_take_home_lakhs"`
	Iterations                 int             `json:"iterations"`
}

// Lakhs converts the search result to lakh units rounded to 2 decimal places
func (r *GrossSearchResult) Lakhs() GrossSearchResultLakhs {
	return GrossSearchResultLakhs{
		SalaryBreakdownLakhs:       r.SalaryBreakdown.Lakhs(),
		TargetMonthlyTakeHomeLakhs: helpers.DisplayLakhs(r.TargetMonthlyTakeHome),
		Iterations:                 r.Iterations,
	}
}

// Rows lists the display fields in print order
func (v GrossSearchResultLakhs) Rows() []Row {
	rows := []Row{{Label: "Target Monthly Take Home", Lakhs: v.TargetMonthlyTakeHomeLakhs}}
	return append(rows, v.SalaryBreakdownLakhs.Rows()...)
}

// FreelancerBreakdown is the presumptive-taxation result for freelance receipts
type FreelancerBreakdown struct {
	CalculationID     uuid.UUID               `json:"calculation_id"`
	Regime            business.TaxRegime      `json:"regime"`
	GrossReceipts     decimal.Decimal         `json:"gross_receipts"`
	ExpensesDeemed    decimal.Decimal         `json:"expenses_deemed"`
	PresumptiveIncome decimal.Decimal         `json:"presumptive_income"`
	Deductions        business.DeductionSet   `json:"deductions"`
	TotalDeductions   decimal.Decimal         `json:"total_deductions"`
	TaxableIncome     decimal.Decimal         `json:"taxable_income"`
	Tax               business.TaxComputation `json:"tax"`
	NetIncome         decimal.Decimal         `json:"net_income"`
	MonthlyTakeHome   decimal.Decimal         `json:"monthly_take_home"`
	CalculatedAt      time.Time               `json:"calculated_at"`
	AuditTrail        business.TaxAuditTrail  `json:"audit_trail"`
}

// FreelancerBreakdownLakhs is the display view of a FreelancerBreakdown
type FreelancerBreakdownLakhs struct {
	Regime                 business.TaxRegime `json:"regime"`
	GrossReceiptsLakhs     decimal.Decimal    `json:"gross_receipts_lakhs"`
	ExpensesDeemedLakhs    decimal.Decimal    `json:"expenses_deemed_lakhs"`
	PresumptiveIncomeLakhs decimal.Decimal    `json:"presumptive_income_lakhs"`
	DeductionsLakhs        decimal.Decimal    `json:"deductions_lakhs"`
	TaxableIncomeLakhs     decimal.Decimal    `json:"taxable_income_lakhs"`
	TaxLakhs               decimal.Decimal    `json:"tax_lakhs"`
	NetIncomeLakhs         decimal.Decimal    `json:"net_income_lakhs"`
	MonthlyTakeHomeLakhs   decimal.Decimal    `json:"monthly_take_home_lakhs"`
}

// Lakhs converts the breakdown to lakh units rounded to 2 decimal places
func (b *FreelancerBreakdown) Lakhs() FreelancerBreakdownLakhs {
	return FreelancerBreakdownLakhs{
		Regime:                 b.Regime,
		GrossReceiptsLakhs:     helpers.DisplayLakhs(b.GrossReceipts),
		ExpensesDeemedLakhs:    helpers.DisplayLakhs(b.ExpensesDeemed),
		PresumptiveIncomeLakhs: helpers.DisplayLakhs(b.PresumptiveIncome),
		DeductionsLakhs:        helpers.DisplayLakhs(b.TotalDeductions),
		TaxableIncomeLakhs:     helpers.DisplayLakhs(b.TaxableIncome),
		TaxLakhs:               helpers.DisplayLakhs(b.Tax.TotalTax),
		NetIncomeLakhs:         helpers.DisplayLakhs(b.NetIncome),
		MonthlyTakeHomeLakhs:   helpers.DisplayLakhs(b.MonthlyTakeHome),
	}
}

// Rows lists the display fields in print order
func (v FreelancerBreakdownLakhs) Rows() []Row {
	return []Row{
		{Label: "Gross Receipts", Lakhs: v.GrossReceiptsLakhs},
		{Label: "Expenses Deemed", Lakhs: v.ExpensesDeemedLakhs},
		{Label: "Presumptive Income", Lakhs: v.PresumptiveIncomeLakhs},
		{Label: "Deductions", Lakhs: v.DeductionsLakhs},
		{Label: "Taxable Income", Lakhs: v.TaxableIncomeLakhs},
		{Label: "Tax", Lakhs: v.TaxLakhs},
		{Label: "Net Income", Lakhs: v.NetIncomeLakhs},
		{Label: "Monthly Take Home", Lakhs: v.MonthlyTakeHomeLakhs},
	}
}
