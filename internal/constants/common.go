package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment  = "prod"
	DevEnvironment   = "dev"
	TestEnvironment  = "test"
	LocalEnvironment = "local"

	// Service name reported in structured logs
	ServiceName = "taxcalc"

	// Regime names
	OldRegime = "old"
	NewRegime = "new"

	// Output formats
	TextFormat = "text"
	JSONFormat = "json"

	// One-shot modes
	NetSalaryMode  = "net"
	GrossMode      = "gross"
	FreelancerMode = "freelancer"
)
