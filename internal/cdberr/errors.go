// Package cdberr defines the stable error codes surfaced by CDB.
package cdberr

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// DatabaseNotFound indicates no compilation database was located
	DatabaseNotFound ErrorCode = "DATABASE_NOT_FOUND"
	// DatabaseMalformed indicates the database file is not a valid JSON array
	DatabaseMalformed ErrorCode = "DATABASE_MALFORMED"
	// CommandUnparsable indicates a compile command string has malformed quoting
	CommandUnparsable ErrorCode = "COMMAND_UNPARSABLE"
	// EntryInvalid indicates a database entry is missing required fields
	EntryInvalid ErrorCode = "ENTRY_INVALID"
	// RegistryCorrupt indicates the database registry file cannot be read
	RegistryCorrupt ErrorCode = "REGISTRY_CORRUPT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// CdbError represents a CDB error with code, message, and suggestions
type CdbError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new CdbError
func New(code ErrorCode, message string, cause error) *CdbError {
	return &CdbError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *CdbError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CdbError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CdbError) WithDetails(details interface{}) *CdbError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	DatabaseNotFound: {
		{
			Type:        RunCommand,
			Command:     "cmake -DCMAKE_EXPORT_COMPILE_COMMANDS=ON .",
			Safe:        true,
			Description: "Ask CMake to emit compile_commands.json for this project",
		},
		{
			Type:        RunCommand,
			Command:     "cdb select <path/to/compile_commands.json>",
			Safe:        true,
			Description: "Register an out-of-tree database for this project",
		},
	},
	DatabaseMalformed: {
		{
			Type:        OpenDocs,
			URL:         "https://clang.llvm.org/docs/JSONCompilationDatabase.html",
			Description: "Check the file against the JSON Compilation Database format",
		},
	},
	RegistryCorrupt: {
		{
			Type:        RunCommand,
			Command:     "cdb databases",
			Safe:        true,
			Description: "Inspect the registry; remove stale entries with 'cdb forget'",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
