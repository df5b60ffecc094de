package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/taxwise/taxcalc/internal/helpers"
	"github.com/taxwise/taxcalc/internal/logger"
	"github.com/taxwise/taxcalc/internal/services"
	"github.com/taxwise/taxcalc/internal/types/business"
)

// Environment variable names
const (
	EnvStage              = "TAXCALC_STAGE"
	EnvLogLevel           = "LOG_LEVEL"
	EnvDefaultRegime      = "TAXCALC_DEFAULT_REGIME"
	EnvApplyDeductions    = "TAXCALC_APPLY_DEDUCTIONS"
	EnvPayrollWithholding = "TAXCALC_PAYROLL_WITHHOLDING"
	EnvRentToBasicRatio   = "TAXCALC_RENT_TO_BASIC_RATIO"
)

// Config holds the runtime settings of the calculator
type Config struct {
	Stage              string
	LogLevel           string
	DefaultRegime      business.TaxRegime
	ApplyDeductions    bool
	PayrollWithholding bool
	RentToBasicRatio   decimal.Decimal
}

// LoadEnv loads variables from a .env file if present. A missing file is
// returned so the caller can log it; it is not fatal.
func LoadEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Stage:    GetEnv(EnvStage, helpers.StageDev),
		LogLevel: GetEnv(EnvLogLevel, "info"),
	}

	if !helpers.IsValidStage(cfg.Stage) {
		return nil, errors.Errorf("%s: unknown stage %q", EnvStage, cfg.Stage)
	}

	cfg.DefaultRegime = business.ParseTaxRegime(GetEnv(EnvDefaultRegime, string(business.RegimeOld)))
	if !cfg.DefaultRegime.IsValid() {
		return nil, errors.Wrapf(services.ErrUnsupportedRegime, "%s=%q", EnvDefaultRegime, cfg.DefaultRegime)
	}

	var err error
	if cfg.ApplyDeductions, err = GetBoolEnv(EnvApplyDeductions, true); err != nil {
		return nil, err
	}
	if cfg.PayrollWithholding, err = GetBoolEnv(EnvPayrollWithholding, false); err != nil {
		return nil, err
	}

	cfg.RentToBasicRatio, err = GetDecimalEnv(EnvRentToBasicRatio, services.DefaultRentToBasicRatio)
	if err != nil {
		return nil, err
	}
	if cfg.RentToBasicRatio.IsNegative() {
		return nil, errors.Errorf("%s must not be negative, got %s", EnvRentToBasicRatio, cfg.RentToBasicRatio)
	}

	return cfg, nil
}

// InitLogger installs the process logger for the configured stage and
// level. debug raises the level to debug, as the -debug flag does.
func (c *Config) InitLogger(debug bool) {
	if debug {
		c.LogLevel = "debug"
	}
	logger.InitLoggerWithLevel(c.Stage, c.LogLevel)
}

// ServiceOptions maps the configuration onto tax service options
func (c *Config) ServiceOptions() []services.Option {
	return []services.Option{
		services.WithDefaultRegime(c.DefaultRegime),
		services.WithDeductions(c.ApplyDeductions),
		services.WithPayrollWithholding(c.PayrollWithholding),
		services.WithRentToBasicRatio(c.RentToBasicRatio),
	}
}

// GetEnv returns an environment variable or a default value
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultVal
}

// GetBoolEnv returns a boolean environment variable or a default value
func GetBoolEnv(key string, defaultVal bool) (bool, error) {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, errors.Wrapf(err, "%s: invalid boolean %q", key, val)
	}
	return b, nil
}

// GetDecimalEnv returns a decimal environment variable or a default value
func GetDecimalEnv(key string, defaultVal decimal.Decimal) (decimal.Decimal, error) {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal, nil
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "%s: invalid number %q", key, val)
	}
	return d, nil
}
