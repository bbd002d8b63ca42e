package diag

import "fmt"

// Formatter renders diagnostics the way the driver prints them to stderr.
type Formatter struct{}

// NewFormatter creates a new diagnostic formatter.
func NewFormatter() *Formatter { return &Formatter{} }

// Format renders a single diagnostic as one line.
func (f *Formatter) Format(d Diagnostic) string {
	if d.Path != "" {
		return fmt.Sprintf("%s: %s[%s]: %s", d.Path, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}
