package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess    = 0 // Success
	ExitError      = 1 // General error (invalid arguments, runtime failure)
	ExitInputError = 2 // Fatal input error (missing file, missing CSV columns, corrupt cache)
)
