package services

import (
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// RulesVersion identifies the slab and deduction tables below
const RulesVersion = "FY2023-24"

// CessRate is applied to slab tax under both regimes
var CessRate = decimal.RequireFromString("0.04")

// OldRegimeSchedule returns the OLD regime slabs:
// 2.5L@0%, 5L@5%, 10L@20%, above@30%.
func OldRegimeSchedule() business.SlabSchedule {
	return business.SlabSchedule{
		Regime: business.RegimeOld,
		Slabs: []business.TaxSlab{
			bounded(250000, "0"),
			bounded(500000, "0.05"),
			bounded(1000000, "0.20"),
			unbounded("0.30"),
		},
	}
}

// NewRegimeSchedule returns the NEW regime slabs:
// 3L@0%, 7L@5%, 10L@10%, 12L@15%, 15L@20%, above@30%.
func NewRegimeSchedule() business.SlabSchedule {
	return business.SlabSchedule{
		Regime: business.RegimeNew,
		Slabs: []business.TaxSlab{
			bounded(300000, "0"),
			bounded(700000, "0.05"),
			bounded(1000000, "0.10"),
			bounded(1200000, "0.15"),
			bounded(1500000, "0.20"),
			unbounded("0.30"),
		},
	}
}

func bounded(upper int64, rate string) business.TaxSlab {
	bound := decimal.NewFromInt(upper)
	return business.TaxSlab{UpperBound: &bound, Rate: decimal.RequireFromString(rate)}
}

func unbounded(rate string) business.TaxSlab {
	return business.TaxSlab{Rate: decimal.RequireFromString(rate)}
}
