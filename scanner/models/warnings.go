package models

import "fmt"

// WarningKind classifies the recoverable conditions a run can hit.
type WarningKind string

const (
	// ReadWarning covers unreadable files and directories met mid-walk.
	ReadWarning WarningKind = "read"
	// ResolutionWarning covers libraries that could not be located on the host.
	ResolutionWarning WarningKind = "resolution"
)

// Warning records one recovered condition. Nothing recoverable is silently
// dropped; warnings are accumulated and surfaced to the caller for display.
type Warning struct {
	Kind   WarningKind
	Path   string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Path, w.Detail)
}

// WarningList accumulates warnings across the stages of one run.
type WarningList struct {
	warnings []Warning
}

// NewWarningList creates an empty warning collector.
func NewWarningList() *WarningList {
	return &WarningList{}
}

// Add appends a warning to the list.
func (l *WarningList) Add(kind WarningKind, path string, detail string) {
	l.warnings = append(l.warnings, Warning{Kind: kind, Path: path, Detail: detail})
}

// All returns the accumulated warnings in the order they were recorded.
func (l *WarningList) All() []Warning {
	return l.warnings
}
