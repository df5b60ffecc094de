package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/constants"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/types/api/params"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// Regime selection menu
const (
	regimeChoiceOld = iota + 1
	regimeChoiceNew
	regimeChoiceExit
)

// Main menu
const (
	menuChoiceNetSalary = iota + 1
	menuChoiceFindGross
	menuChoiceFreelancer
	menuChoiceChangeRegime
	menuChoiceBack
)

// errInvalidChoice is returned for menu input that is not a listed option
var errInvalidChoice = errors.New("invalid menu choice")

// MenuHandler drives the interactive calculator session
type MenuHandler struct {
	common *CommonServices
	in     *bufio.Reader
}

// NewMenuHandler creates a menu handler reading choices from in
func NewMenuHandler(common *CommonServices, in io.Reader) *MenuHandler {
	return &MenuHandler{
		common: common,
		in:     bufio.NewReader(in),
	}
}

// Run shows the regime selection menu and then the main menu until the user
// exits or input ends. Input errors are reported and re-prompted, never returned.
func (h *MenuHandler) Run(ctx context.Context) error {
	h.common.logger.Info("Interactive session started")
	defer h.common.logger.Info("Interactive session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.displayRegimeSelectionMenu()
		choice, err := h.readChoice(regimeChoiceExit)
		if errors.Is(err, io.EOF) {
			h.goodbye()
			return nil
		}
		if err != nil {
			h.common.printf("\nError: %s\n", fmt.Sprintf(constants.InvalidChoice, regimeChoiceExit))
			continue
		}

		regime := business.RegimeOld
		switch choice {
		case regimeChoiceExit:
			h.goodbye()
			return nil
		case regimeChoiceNew:
			regime = business.RegimeNew
		}
		if err := h.common.taxService.SetRegime(regime); err != nil {
			h.common.sendError("Failed to set tax regime", err)
			continue
		}

		done, err := h.runMainMenu(ctx)
		if err != nil {
			return err
		}
		if done {
			h.goodbye()
			return nil
		}
	}
}

// runMainMenu loops over the main menu. It returns done=true when input ends.
func (h *MenuHandler) runMainMenu(ctx context.Context) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		h.displayMainMenu()
		choice, err := h.readChoice(menuChoiceBack)
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			h.common.printf("\nError: %s\n", fmt.Sprintf(constants.InvalidChoice, menuChoiceBack))
			continue
		}

		switch choice {
		case menuChoiceBack:
			return false, nil
		case menuChoiceNetSalary:
			err = h.netSalary(ctx)
		case menuChoiceFindGross:
			err = h.findGross(ctx)
		case menuChoiceFreelancer:
			err = h.freelancerTax(ctx)
		case menuChoiceChangeRegime:
			h.changeRegime()
		}
		if errors.Is(err, io.EOF) {
			return true, nil
		}

		h.common.printf("\n%s", constants.PressEnterToProceed)
		if _, err := h.readLine(); errors.Is(err, io.EOF) {
			return true, nil
		}
	}
}

func (h *MenuHandler) displayRegimeSelectionMenu() {
	h.common.printBanner("Indian Income Tax Calculator")
	h.common.printf("\nSelect Tax Regime:\n")
	h.common.printf("1. Old Tax Regime\n")
	h.common.printf("2. New Tax Regime\n")
	h.common.printf("3. Exit\n")
}

func (h *MenuHandler) displayMainMenu() {
	h.common.printBanner(h.common.taxService.CurrentRegime().Title() + " Tax Regime Options")
	h.common.printf("\n1. Calculate Net Salary\n")
	h.common.printf("2. Find Gross Salary for Target Take-Home\n")
	h.common.printf("3. Calculate Freelancer Tax (Section 44ADA)\n")
	h.common.printf("4. Change Tax Regime\n")
	h.common.printf("5. Back to Regime Selection\n")
}

func (h *MenuHandler) netSalary(ctx context.Context) error {
	regime := h.common.taxService.CurrentRegime()
	h.common.printf("\nNet Salary Calculation (%s Regime)\n", regime.Title())

	gross, err := h.promptAmount("Enter Gross Annual Salary (₹ in Lakhs): ", MinAmountLakhs, MaxSalaryLakhs)
	if err != nil {
		return err
	}

	opLogger := h.common.logger.WithRegime(string(regime))
	return ignoreReported(opLogger.LogOperation("net_salary", func() error {
		result, err := h.common.taxService.CalculateNetSalary(ctx, params.NetSalaryParams{
			GrossSalaryLakhs: gross,
			Regime:           regime,
		})
		if err != nil {
			h.common.sendError("Failed to calculate net salary", err)
			return err
		}

		h.common.printRows("Salary Breakdown:", result.Lakhs().Rows())
		h.common.printDeductions(result.Deductions)
		h.common.printSlabs(result.Tax)

		other := regime.Other()
		comparison, err := h.common.taxService.CalculateNetSalary(ctx, params.NetSalaryParams{
			GrossSalaryLakhs: gross,
			Regime:           other,
		})
		if err != nil {
			h.common.sendError("Failed to calculate regime comparison", err)
			return err
		}
		h.common.printf("\nMonthly take-home under %s Regime: %s\n",
			other.Title(), helpers.FormatLakhs(comparison.Lakhs().MonthlyTakeHomeLakhs))
		return nil
	}))
}

func (h *MenuHandler) findGross(ctx context.Context) error {
	regime := h.common.taxService.CurrentRegime()
	h.common.printf("\nGross Salary Determination (%s Regime)\n", regime.Title())

	target, err := h.promptAmount("Enter Target Monthly Take-Home Salary (₹ in Lakhs): ", MinAmountLakhs, MaxTargetTakeHomeLakhs)
	if err != nil {
		return err
	}

	opLogger := h.common.logger.WithRegime(string(regime))
	return ignoreReported(opLogger.LogOperation("find_gross", func() error {
		result, err := h.common.taxService.FindGrossForTargetTakeHome(ctx, params.TargetTakeHomeParams{
			TargetMonthlyTakeHomeLakhs: target,
			Regime:                     regime,
		})
		if err != nil {
			h.common.sendError("Failed to find gross salary", err)
			return err
		}

		h.common.printRows("Gross Salary Requirement:", result.Lakhs().Rows())
		h.common.printDeductions(result.Deductions)
		h.common.printSlabs(result.Tax)
		return nil
	}))
}

func (h *MenuHandler) freelancerTax(ctx context.Context) error {
	regime := h.common.taxService.CurrentRegime()
	h.common.printf("\nFreelancer Tax Calculation - Section 44ADA (%s Regime)\n", regime.Title())

	receipts, err := h.promptAmount("Enter Gross Annual Receipts (₹ in Lakhs): ", MinAmountLakhs, MaxSalaryLakhs)
	if err != nil {
		return err
	}

	opLogger := h.common.logger.WithRegime(string(regime))
	return ignoreReported(opLogger.LogOperation("freelancer_tax", func() error {
		result, err := h.common.taxService.CalculateFreelancerTax(ctx, params.FreelancerTaxParams{
			GrossReceiptsLakhs: receipts,
			Regime:             regime,
		})
		if err != nil {
			h.common.sendError("Failed to calculate freelancer tax", err)
			return err
		}

		h.common.printRows("Income & Tax Breakdown:", result.Lakhs().Rows())
		h.common.printDeductions(result.Deductions)
		h.common.printSlabs(result.Tax)
		return nil
	}))
}

func (h *MenuHandler) changeRegime() {
	h.common.printf("\nChange Tax Regime\n")
	h.common.printf("Current Regime: %s\n", h.common.taxService.CurrentRegime().Title())
	next := h.common.taxService.ToggleRegime()
	h.common.printf("Regime changed to %s Tax Regime.\n", next.Title())
}

func (h *MenuHandler) goodbye() {
	h.common.printf("\n%s\n", constants.Goodbye)
}

// readChoice reads a menu choice between 1 and maxChoice
func (h *MenuHandler) readChoice(maxChoice int) (int, error) {
	h.common.printf("\nEnter your choice (1-%d): ", maxChoice)
	line, err := h.readLine()
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > maxChoice {
		return 0, errors.Wrapf(errInvalidChoice, "%q", line)
	}
	return choice, nil
}

// promptAmount re-prompts until a number within [lower, upper] is entered
func (h *MenuHandler) promptAmount(prompt string, lower, upper decimal.Decimal) (decimal.Decimal, error) {
	for {
		h.common.printf("%s", prompt)
		line, err := h.readLine()
		if err != nil {
			return decimal.Zero, err
		}

		amount, err := helpers.ParseLakhs(line)
		if err != nil {
			h.common.printf("Error: %s\n", constants.NotANumber)
			continue
		}
		if amount.LessThan(lower) || amount.GreaterThan(upper) {
			h.common.printf("Error: %s\n", fmt.Sprintf(constants.InvalidAmount, lower.String(), upper.String()))
			continue
		}
		return amount, nil
	}
}

// readLine returns the next trimmed input line. A final line without a
// newline is returned before io.EOF.
func (h *MenuHandler) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ignoreReported drops errors already shown to the user so the menu continues
func ignoreReported(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
