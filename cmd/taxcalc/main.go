package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/taxwise/taxcalc/internal/config"
	"github.com/taxwise/taxcalc/internal/constants"
	"github.com/taxwise/taxcalc/internal/handlers"
	"github.com/taxwise/taxcalc/internal/logger"
	"github.com/taxwise/taxcalc/internal/services"
	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "", "one-shot mode: net, gross or freelancer (interactive menu when empty)")
	amount := flag.String("amount", "", "amount in lakhs: annual gross salary, monthly take-home target or annual receipts")
	regime := flag.String("regime", "", "tax regime: old or new (defaults to TAXCALC_DEFAULT_REGIME)")
	jsonOutput := flag.Bool("json", false, "print the one-shot result as JSON")
	debug := flag.Bool("debug", false, "log a dump of the full result record")
	flag.Parse()

	os.Exit(run(*mode, *amount, *regime, *jsonOutput, *debug))
}

func run(mode, amount, regime string, jsonOutput, debug bool) int {
	envErr := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return 2
	}

	cfg.InitLogger(debug)
	defer logger.Sync()

	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}
	logger.Debug("Configuration loaded",
		zap.String("stage", cfg.Stage),
		zap.String("log_level", cfg.LogLevel),
		zap.String("default_regime", string(cfg.DefaultRegime)),
		zap.Bool("apply_deductions", cfg.ApplyDeductions),
		zap.Bool("payroll_withholding", cfg.PayrollWithholding),
		zap.String("rent_to_basic_ratio", cfg.RentToBasicRatio.String()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads from stdin cannot be interrupted, so an interrupt exits directly.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		cancel()
		logger.Info("Received signal, exiting", zap.String("signal", sig.String()))
		fmt.Fprintf(os.Stdout, "\n%s\n", constants.Goodbye)
		_ = logger.Sync()
		os.Exit(0)
	}()

	taxService := services.NewTaxService(cfg.ServiceOptions()...)
	common := handlers.NewCommonServices(handlers.CommonServicesConfig{
		TaxService: taxService,
		Out:        os.Stdout,
		Logger:     logger.Log,
	})

	if mode == "" {
		if err := handlers.NewMenuHandler(common, os.Stdin).Run(ctx); err != nil {
			logger.Error("Interactive session failed", zap.Error(err))
			return 1
		}
		return 0
	}

	format := constants.TextFormat
	if jsonOutput {
		format = constants.JSONFormat
	}

	oneShot := handlers.NewOneShotHandler(common)
	if err := oneShot.Run(ctx, handlers.OneShotRequest{
		Mode:   mode,
		Amount: amount,
		Regime: regime,
		Format: format,
		Debug:  debug,
	}); err != nil {
		oneShot.ReportError(err)
		return 1
	}
	return 0
}
