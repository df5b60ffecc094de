package business_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxwise/taxcalc/internal/types/business"
)

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSlabSchedule_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schedule business.SlabSchedule
		wantErr  string
	}{
		{
			name: "valid progressive schedule",
			schedule: business.SlabSchedule{Regime: business.RegimeOld, Slabs: []business.TaxSlab{
				{UpperBound: bound(250000), Rate: rate("0")},
				{UpperBound: bound(500000), Rate: rate("0.05")},
				{Rate: rate("0.30")},
			}},
		},
		{
			name:     "empty schedule",
			schedule: business.SlabSchedule{Regime: business.RegimeOld},
			wantErr:  "has no slabs",
		},
		{
			name: "bounded last slab",
			schedule: business.SlabSchedule{Regime: business.RegimeOld, Slabs: []business.TaxSlab{
				{UpperBound: bound(250000), Rate: rate("0")},
				{UpperBound: bound(500000), Rate: rate("0.05")},
			}},
			wantErr: "last slab must be unbounded",
		},
		{
			name: "unbounded slab in the middle",
			schedule: business.SlabSchedule{Regime: business.RegimeNew, Slabs: []business.TaxSlab{
				{Rate: rate("0")},
				{Rate: rate("0.05")},
			}},
			wantErr: "only the last slab may be unbounded",
		},
		{
			name: "bounds not increasing",
			schedule: business.SlabSchedule{Regime: business.RegimeNew, Slabs: []business.TaxSlab{
				{UpperBound: bound(500000), Rate: rate("0")},
				{UpperBound: bound(500000), Rate: rate("0.05")},
				{Rate: rate("0.30")},
			}},
			wantErr: "not above",
		},
		{
			name: "rate decreasing",
			schedule: business.SlabSchedule{Regime: business.RegimeNew, Slabs: []business.TaxSlab{
				{UpperBound: bound(300000), Rate: rate("0.10")},
				{Rate: rate("0.05")},
			}},
			wantErr: "below previous rate",
		},
		{
			name: "rate of one",
			schedule: business.SlabSchedule{Regime: business.RegimeNew, Slabs: []business.TaxSlab{
				{Rate: rate("1")},
			}},
			wantErr: "outside [0,1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTaxRegime(t *testing.T) {
	tests := []struct {
		input    string
		expected business.TaxRegime
		valid    bool
	}{
		{input: "old", expected: business.RegimeOld, valid: true},
		{input: " NEW ", expected: business.RegimeNew, valid: true},
		{input: "Old", expected: business.RegimeOld, valid: true},
		{input: "flat", expected: "flat", valid: false},
		{input: "", expected: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			regime := business.ParseTaxRegime(tt.input)
			assert.Equal(t, tt.expected, regime)
			assert.Equal(t, tt.valid, regime.IsValid())
		})
	}
}

func TestTaxRegime_OtherAndTitle(t *testing.T) {
	assert.Equal(t, business.RegimeNew, business.RegimeOld.Other())
	assert.Equal(t, business.RegimeOld, business.RegimeNew.Other())
	assert.Equal(t, "Old", business.RegimeOld.Title())
	assert.Equal(t, "New", business.RegimeNew.Title())
}

func TestDeductionSet_Total(t *testing.T) {
	set := business.DeductionSet{
		RetirementContribution:  decimal.NewFromInt(60000),
		MedicalInsuranceSelf:    decimal.NewFromInt(25000),
		MedicalInsuranceParents: decimal.NewFromInt(50000),
		PreventiveHealthCheckup: decimal.NewFromInt(5000),
		HousingRentExemption:    decimal.NewFromInt(150000),
		StandardDeduction:       decimal.NewFromInt(50000),
	}

	assert.True(t, decimal.NewFromInt(340000).Equal(set.Total()))
	assert.Len(t, set.Items(), 7)
	assert.True(t, business.DeductionSet{}.Total().IsZero())
}
