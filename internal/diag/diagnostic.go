// Package diag holds the one recoverable-error surface in this module: the
// driver's annotated-AST reading phase (spec §7: codegen-proper input is
// assumed well-typed and a malformed AST there is a programmer error, not a
// diagnostic).
package diag

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityNote  Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeReadFailure   Code = "AST_READ_FAILURE"
	CodeDecodeFailure Code = "AST_DECODE_FAILURE"
	CodeBadParent     Code = "AST_UNKNOWN_PARENT"
)

// Diagnostic is a single user-facing report from the driver.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
}
