package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands. ExitCodeFor picks one from an error.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, refused access,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing workspace or project, missing required flags,
	// or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Workspace, project, label or parent label not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: A config file that cannot be parsed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid colors, names, roles or slugs, or a parent label
	// outside the project.
	ExitValidation = 5
)
