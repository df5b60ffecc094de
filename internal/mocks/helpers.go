package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockTaxServiceForTest creates a new mock TaxService for testing
func NewMockTaxServiceForTest(t *testing.T) *MockTaxService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTaxService(ctrl)
}
