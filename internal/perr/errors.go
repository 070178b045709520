// Package perr defines photon's error taxonomy: the small set of error
// kinds the line assembler, parser, engine and loader can raise, plus a
// uniform CLI payload for reporting them. The shape follows the teacher's
// CLIError/Wrap pattern, renamed to this domain's codes.
package perr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Code is a machine-readable error identifier, stable across releases so
// that CLI consumers (and the trace store) can key off it.
type Code string

const (
	CodeSyntax       Code = "ERR_SYNTAX"
	CodeNameNotFound Code = "ERR_NAME_NOT_FOUND"
	CodeImport       Code = "ERR_IMPORT"
	CodeUnsupported  Code = "ERR_UNSUPPORTED_CONSTRUCT"
	CodeIO           Code = "ERR_IO"
)

// SyntaxError is raised when the parser finds no applicable reduction, or
// when a valid shape carries semantics the grammar forbids (e.g. a
// mixed-type map key literal).
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Snippet  string
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Filename, e.Line, e.Column, e.Message)
}

// NameNotFound is raised when a scope lookup fails where resolution was
// required (an undotted reference, or the base of a dotted access).
type NameNotFound struct {
	Name    string
	Context string
}

func (e *NameNotFound) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("name not found: %q (%s)", e.Name, e.Context)
	}
	return fmt.Sprintf("name not found: %q", e.Name)
}

// ImportError wraps a sub-engine failure or a missing module file.
type ImportError struct {
	Module string
	Inner  error
}

func (e *ImportError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("import %q: %v", e.Module, e.Inner)
	}
	return fmt.Sprintf("import %q: module not found", e.Module)
}

func (e *ImportError) Unwrap() error { return e.Inner }

// UnsupportedConstruct marks a valid parse whose semantics photon does not
// yet model, such as a native-extension import.
type UnsupportedConstruct struct {
	What string
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.What)
}

// IOError wraps a source-file open/read failure.
type IOError struct {
	Path  string
	Inner error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error reading %q: %v", e.Path, e.Inner) }
func (e *IOError) Unwrap() error { return e.Inner }

// Sentinel errors for programmatic checking, independent of the rich
// per-kind types above.
var (
	ErrNotFound          = errors.New("not found")
	ErrCycle             = errors.New("import cycle detected")
	ErrNativeUnsupported = errors.New("native extension imports are not implemented")
)

// CLIError is a uniform error payload for CLI output, usable as both a
// human-readable message and a JSON object.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e CLIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e CLIError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap builds a CLIError carrying code and msg, with inner's message as
// detail.
func Wrap(code Code, msg string, inner error) error {
	return CLIError{Code: string(code), Message: msg, Detail: inner.Error()}
}

// CodeOf extracts the Code for a photon error, defaulting to an empty
// code for errors outside this package's taxonomy.
func CodeOf(err error) Code {
	var se *SyntaxError
	var nf *NameNotFound
	var ie *ImportError
	var uc *UnsupportedConstruct
	var io *IOError
	switch {
	case errors.As(err, &se):
		return CodeSyntax
	case errors.As(err, &nf):
		return CodeNameNotFound
	case errors.As(err, &ie):
		return CodeImport
	case errors.As(err, &uc):
		return CodeUnsupported
	case errors.As(err, &io):
		return CodeIO
	default:
		return ""
	}
}
