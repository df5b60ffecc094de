package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/types/business"
	"go.uber.org/zap"
)

// Option configures a TaxService
type Option func(*config)

type config struct {
	applyDeductions    bool
	payrollWithholding bool
	rentToBasicRatio   decimal.Decimal
	defaultRegime      business.TaxRegime
	logger             *zap.Logger
	clock              func() time.Time
	newID              func() uuid.UUID
}

// WithDeductions toggles the deduction-aware forward variant. When disabled,
// taxable income equals gross salary.
func WithDeductions(enabled bool) Option {
	return func(c *config) {
		c.applyDeductions = enabled
	}
}

// WithPayrollWithholding subtracts the employee's mandatory retirement
// contribution from the cash received.
func WithPayrollWithholding(enabled bool) Option {
	return func(c *config) {
		c.payrollWithholding = enabled
	}
}

// WithRentToBasicRatio sets the notional annual rent paid as a fraction of basic salary.
func WithRentToBasicRatio(ratio decimal.Decimal) Option {
	return func(c *config) {
		c.rentToBasicRatio = ratio
	}
}

// WithDefaultRegime sets the initial current regime.
func WithDefaultRegime(regime business.TaxRegime) Option {
	return func(c *config) {
		c.defaultRegime = regime
	}
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock overrides time.Now for CalculatedAt stamps.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithIDGenerator overrides uuid.New for calculation IDs.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(c *config) {
		c.newID = newID
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		applyDeductions:  true,
		rentToBasicRatio: DefaultRentToBasicRatio,
		defaultRegime:    business.RegimeOld,
		clock:            time.Now,
		newID:            uuid.New,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
