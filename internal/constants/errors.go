package constants

// Messages shown to the user by the CLI handlers
const (
	InvalidChoice       = "please enter a number between 1 and %d"
	InvalidAmount       = "please enter a number between %s and %s"
	NotANumber          = "please enter a numeric amount"
	UnsupportedRegime   = "unsupported tax regime %q (use old or new)"
	TargetUnreachable   = "target take-home cannot be reached with a gross salary between %s and %s lakh"
	UnexpectedError     = "an unexpected error occurred: %v"
	TryAgain            = "please try again."
	Goodbye             = "Exiting Tax Calculator. Goodbye!"
	PressEnterToProceed = "Press Enter to continue..."
)
