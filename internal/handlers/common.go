package handlers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/constants"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/interfaces"
	"github.com/taxwise/taxcalc/internal/logger"
	"github.com/taxwise/taxcalc/internal/services"
	"github.com/taxwise/taxcalc/internal/types/api/responses"
	"github.com/taxwise/taxcalc/internal/types/business"
	"go.uber.org/zap"
)

const bannerWidth = 50

// Accepted input ranges, in lakhs
var (
	MinAmountLakhs         = decimal.RequireFromString("0.1")
	MaxSalaryLakhs         = decimal.NewFromInt(1000)
	MaxTargetTakeHomeLakhs = decimal.NewFromInt(100)
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	taxService interfaces.TaxService
	out        io.Writer
	logger     *logger.StructuredLogger
	sessionID  uuid.UUID
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	TaxService interfaces.TaxService
	Out        io.Writer
	Logger     *zap.Logger
	SessionID  uuid.UUID
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Logger == nil {
		config.Logger = logger.Log
	}
	if config.SessionID == uuid.Nil {
		config.SessionID = uuid.New()
	}

	return &CommonServices{
		taxService: config.TaxService,
		out:        config.Out,
		logger: logger.NewStructuredLoggerWith(config.Logger, logger.ComponentCLI).
			WithCorrelationID(config.SessionID.String()),
		sessionID: config.SessionID,
	}
}

// SessionID returns the correlation ID attached to every log line of this session
func (c *CommonServices) SessionID() uuid.UUID {
	return c.sessionID
}

func (c *CommonServices) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CommonServices) println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// printBanner prints text centred between two rules
func (c *CommonServices) printBanner(text string) {
	rule := strings.Repeat("=", bannerWidth)
	pad := (bannerWidth - utf8.RuneCountInString(text)) / 2
	if pad < 0 {
		pad = 0
	}
	c.printf("\n%s\n%s%s\n%s\n", rule, strings.Repeat(" ", pad), text, rule)
}

// sendError logs the error and prints a user-facing message
func (c *CommonServices) sendError(message string, err error) {
	if isUserError(err) {
		c.logger.Warn(message + ": " + err.Error())
	} else {
		c.logger.Error(message, err)
	}
	c.printf("\nError: %s\n", describeError(err))
	if !isUserError(err) {
		c.println(constants.TryAgain)
	}
}

func isUserError(err error) bool {
	return errors.Is(err, services.ErrInvalidInput) ||
		errors.Is(err, services.ErrUnsupportedRegime) ||
		errors.Is(err, services.ErrSearchBoundsExceeded) ||
		errors.Is(err, helpers.ErrNotANumber)
}

// describeError maps engine errors to the message shown to the user
func describeError(err error) string {
	var boundsErr *services.SearchBoundsError
	switch {
	case errors.As(err, &boundsErr):
		return fmt.Sprintf(constants.TargetUnreachable,
			boundsErr.LowerGrossLakhs.String(), boundsErr.UpperGrossLakhs.String()) +
			fmt.Sprintf(" (reachable monthly take-home %s to %s)",
				helpers.FormatLakhs(boundsErr.MinMonthly), helpers.FormatLakhs(boundsErr.MaxMonthly))
	case errors.Is(err, helpers.ErrNotANumber):
		return constants.NotANumber
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrUnsupportedRegime):
		return err.Error()
	default:
		return fmt.Sprintf(constants.UnexpectedError, err)
	}
}

// printRows prints labelled lakh amounts, e.g. "Net Salary: ₹9.54 Lakhs"
func (c *CommonServices) printRows(title string, rows []responses.Row) {
	c.printf("\n%s\n", title)
	for _, row := range rows {
		c.printf("%s: %s\n", row.Label, helpers.FormatLakhs(row.Lakhs))
	}
}

// printDeductions prints the non-zero deduction categories in rupees
func (c *CommonServices) printDeductions(deductions business.DeductionSet) {
	printed := false
	for _, item := range deductions.Items() {
		if item.Amount.IsZero() {
			continue
		}
		if !printed {
			c.printf("\nDeductions:\n")
			printed = true
		}
		c.printf("  %-28s %s\n", item.Label, helpers.FormatRupees(item.Amount))
	}
}

// printSlabs prints the tax attributed to each slab plus cess
func (c *CommonServices) printSlabs(tax business.TaxComputation) {
	if len(tax.Breakdown) == 0 {
		return
	}
	c.printf("\nSlab Breakdown:\n")
	for _, item := range tax.Breakdown {
		upper := "above"
		if item.UpperBound != nil {
			upper = helpers.FormatRupees(*item.UpperBound)
		}
		c.printf("  %s - %s @ %s%%: %s\n",
			helpers.FormatRupees(item.LowerBound), upper,
			item.Rate.Shift(2).String(), helpers.FormatRupees(item.TaxAmount))
	}
	c.printf("  Cess: %s\n", helpers.FormatRupees(tax.Cess))
	c.printf("  Total Tax: %s\n", helpers.FormatRupees(tax.TotalTax))
}
