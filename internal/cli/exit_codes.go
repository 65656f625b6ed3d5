package cli

// Exit codes for the shiplog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitNoRepository indicates no git repository was found
	ExitNoRepository = 4
)
