package metadata

import (
	"strings"
)

// Script is a metadata script split into its parts.
type Script struct {
	Path     string // Source path (may be empty)
	Preamble string // First line, without line ending
	Table    string // Table named in the preamble, empty if not recognised
	Document string // Extracted JSON text
}

// ValidationResult contains the outcome of metadata validation.
// Errors hold *MissingKeyError, *MissingSubkeyError and *MissingListKeyError
// values; Warnings hold human-readable notes such as unrecognised keys.
type ValidationResult struct {
	Version  string
	Valid    bool
	Errors   []error
	Warnings []string
}

// AddError appends a diagnostic and marks the result as invalid.
func (v *ValidationResult) AddError(err error) {
	v.Valid = false
	v.Errors = append(v.Errors, err)
}

// AddWarning appends a warning. Warnings do not affect Valid.
func (v *ValidationResult) AddWarning(msg string) {
	v.Warnings = append(v.Warnings, msg)
}

// HasErrors returns true if the validation result contains errors.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrorString returns all validation errors joined with semicolons.
// Returns empty string if no errors.
func (v *ValidationResult) ErrorString() string {
	msgs := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
