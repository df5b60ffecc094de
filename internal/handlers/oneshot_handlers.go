package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/taxwise/taxcalc/internal/constants"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/services"
	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// OneShotRequest describes a single non-interactive calculation
type OneShotRequest struct {
	Mode   string
	Amount string
	Regime string
	Format string
	Debug  bool
}

// oneShotOutput is the JSON document printed with -json
type oneShotOutput struct {
	CalculationID uuid.UUID              `json:"calculation_id"`
	Mode          string                 `json:"mode"`
	Result        interface{}            `json:"result"`
	AuditTrail    business.TaxAuditTrail `json:"audit_trail"`
}

// OneShotHandler runs one calculation and prints the result
type OneShotHandler struct {
	common *CommonServices
}

// NewOneShotHandler creates a one-shot handler
func NewOneShotHandler(common *CommonServices) *OneShotHandler {
	return &OneShotHandler{common: common}
}

// Run performs the requested calculation. Unlike the menu, errors are
// returned so the caller can set the exit status.
func (h *OneShotHandler) Run(ctx context.Context, req OneShotRequest) error {
	if req.Format == "" {
		req.Format = constants.TextFormat
	}
	if req.Format != constants.TextFormat && req.Format != constants.JSONFormat {
		return errors.Wrapf(services.ErrInvalidInput, "unknown output format %q", req.Format)
	}

	switch req.Mode {
	case constants.NetSalaryMode, constants.GrossMode, constants.FreelancerMode:
	default:
		return errors.Wrapf(services.ErrInvalidInput, "unknown mode %q (use %s, %s or %s)",
			req.Mode, constants.NetSalaryMode, constants.GrossMode, constants.FreelancerMode)
	}

	regime := business.ParseTaxRegime(req.Regime)
	if regime != "" && !regime.IsValid() {
		return errors.Wrap(services.ErrUnsupportedRegime, fmt.Sprintf(constants.UnsupportedRegime, req.Regime))
	}

	amount, err := helpers.ParseLakhs(req.Amount)
	if err != nil {
		return errors.Wrap(services.ErrInvalidInput, err.Error())
	}

	opLogger := h.common.logger.WithOperation(req.Mode).WithField("amount_lakhs", amount.String())
	if regime != "" {
		opLogger = opLogger.WithRegime(string(regime))
	}
	opLogger.Debug("One-shot calculation requested")

	switch req.Mode {
	case constants.NetSalaryMode:
		result, err := h.common.taxService.CalculateNetSalary(ctx, params.NetSalaryParams{
			GrossSalaryLakhs: amount,
			Regime:           regime,
		})
		if err != nil {
			return err
		}
		h.dumpDebug(req, result)
		if req.Format == constants.JSONFormat {
			return h.writeJSON(oneShotOutput{
				CalculationID: result.CalculationID,
				Mode:          req.Mode,
				Result:        result.Lakhs(),
				AuditTrail:    result.AuditTrail,
			})
		}
		h.common.printf("Net Salary Calculation (%s Regime)\n", result.Regime.Title())
		h.common.printRows("Salary Breakdown:", result.Lakhs().Rows())
		h.common.printDeductions(result.Deductions)
		h.common.printSlabs(result.Tax)

	case constants.GrossMode:
		result, err := h.common.taxService.FindGrossForTargetTakeHome(ctx, params.TargetTakeHomeParams{
			TargetMonthlyTakeHomeLakhs: amount,
			Regime:                     regime,
		})
		if err != nil {
			return err
		}
		h.dumpDebug(req, result)
		if req.Format == constants.JSONFormat {
			return h.writeJSON(oneShotOutput{
				CalculationID: result.CalculationID,
				Mode:          req.Mode,
				Result:        result.Lakhs(),
				AuditTrail:    result.AuditTrail,
			})
		}
		h.common.printf("Gross Salary Determination (%s Regime)\n", result.Regime.Title())
		h.common.printRows("Gross Salary Requirement:", result.Lakhs().Rows())
		h.common.printDeductions(result.Deductions)
		h.common.printSlabs(result.Tax)

	case constants.FreelancerMode:
		result, err := h.common.taxService.CalculateFreelancerTax(ctx, params.FreelancerTaxParams{
			GrossReceiptsLakhs: amount,
			Regime:             regime,
		})
		if err != nil {
			return err
		}
		h.dumpDebug(req, result)
		if req.Format == constants.JSONFormat {
			return h.writeJSON(oneShotOutput{
				CalculationID: result.CalculationID,
				Mode:          req.Mode,
				Result:        result.Lakhs(),
				AuditTrail:    result.AuditTrail,
			})
		}
		h.common.printf("Freelancer Tax Calculation - Section 44ADA (%s Regime)\n", result.Regime.Title())
		h.common.printRows("Income & Tax Breakdown:", result.Lakhs().Rows())
		h.common.printDeductions(result.Deductions)
		h.common.printSlabs(result.Tax)
	}

	opLogger.Debug("One-shot calculation completed")
	return nil
}

// ReportError prints a user-facing description of a one-shot failure
func (h *OneShotHandler) ReportError(err error) {
	h.common.sendError("One-shot calculation failed", err)
}

func (h *OneShotHandler) dumpDebug(req OneShotRequest, result interface{}) {
	if !req.Debug {
		return
	}
	h.common.logger.WithOperation(req.Mode).WithField("result", spew.Sdump(result)).Info("Calculation result")
}

func (h *OneShotHandler) writeJSON(v interface{}) error {
	encoder := json.NewEncoder(h.common.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		h.common.logger.Error("Failed to encode result", err)
		return errors.Wrap(err, "failed to encode result")
	}
	return nil
}
