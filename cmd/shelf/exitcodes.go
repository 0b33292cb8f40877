package main

// Exit codes used by every shelf command.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not in a repository, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, validation failure)
)
