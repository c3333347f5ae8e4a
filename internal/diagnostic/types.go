package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics holds every finding of a check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier of the kind of finding.
	Code string
	// Message is the human-readable description.
	Message string
	// Type names the struct type the finding belongs to (if any).
	Type string
	// Path locates the property or setting within the type (if any).
	Path string
	// Suggestions are likely fixes.
	Suggestions []string
}

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity ranks diagnostics.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

func (d *Diagnostics) add(severity Severity, code, message, typeName, path string, suggestions []string) {
	diag := Diagnostic{
		Severity:    severity,
		Code:        code,
		Message:     message,
		Type:        typeName,
		Path:        path,
		Suggestions: suggestions,
	}

	switch severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, path string, suggestions ...string) {
	d.add(SeverityError, code, message, typeName, path, suggestions)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, path string, suggestions ...string) {
	d.add(SeverityWarning, code, message, typeName, path, suggestions)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, path string, suggestions ...string) {
	d.add(SeverityInfo, code, message, typeName, path, suggestions)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge appends the diagnostics of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err returns the error diagnostics combined into one error, or nil.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
