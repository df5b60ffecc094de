package interfaces

import (
	"context"

	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/api/responses"
	"github.com/taxwise/taxcalc/internal/types/business"
)

//go:generate mockgen -source=services.go -destination=../mocks/mock_services.go -package=mocks

// TaxService computes salary and freelancer taxation under the OLD and NEW regimes
type TaxService interface {
	CalculateNetSalary(ctx context.Context, params params.NetSalaryParams) (*responses.SalaryBreakdown, error)
	FindGrossForTargetTakeHome(ctx context.Context, params params.TargetTakeHomeParams) (*responses.GrossSearchResult, error)
	CalculateFreelancerTax(ctx context.Context, params params.FreelancerTaxParams) (*responses.FreelancerBreakdown, error)
	CurrentRegime() business.TaxRegime
	SetRegime(regime business.TaxRegime) error
	ToggleRegime() business.TaxRegime
}
