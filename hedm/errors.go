package hedm

import (
	"errors"
	"fmt"
)

// Code is the numeric code of a hard read failure.
type Code int

const (
	CodeCannotOpenFile      Code = -100
	CodeMissingInternalPath Code = -101
	CodeEmptyConfiguredPath Code = -102
	CodeMissingHeaderGroup  Code = -105
	CodeMissingPhasesGroup  Code = -106
	CodeNoPhasesFound       Code = -107
	CodeMissingDataGroup    Code = -108
	CodeInvalidDimensions   Code = -200
)

func (c Code) String() string {
	switch c {
	case CodeCannotOpenFile:
		return "cannot open file"
	case CodeMissingInternalPath:
		return "missing internal path"
	case CodeEmptyConfiguredPath:
		return "empty configured path"
	case CodeMissingHeaderGroup:
		return "missing Header group"
	case CodeMissingPhasesGroup:
		return "missing Header/Phases group"
	case CodeNoPhasesFound:
		return "no phase groups found"
	case CodeMissingDataGroup:
		return "missing Data group"
	case CodeInvalidDimensions:
		return "invalid dimensions"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// Error is a hard failure that aborted a read stage.
type Error struct {
	Code Code
	Path string // file or group path the failure refers to
	Err  error  // underlying store error, may be nil
}

func (e *Error) Error() string {
	msg := "hedm: " + e.Code.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, so the
// sentinels below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrCannotOpenFile      = &Error{Code: CodeCannotOpenFile}
	ErrMissingInternalPath = &Error{Code: CodeMissingInternalPath}
	ErrEmptyConfiguredPath = &Error{Code: CodeEmptyConfiguredPath}
	ErrMissingHeaderGroup  = &Error{Code: CodeMissingHeaderGroup}
	ErrMissingPhasesGroup  = &Error{Code: CodeMissingPhasesGroup}
	ErrNoPhasesFound       = &Error{Code: CodeNoPhasesFound}
	ErrMissingDataGroup    = &Error{Code: CodeMissingDataGroup}
	ErrInvalidDimensions   = &Error{Code: CodeInvalidDimensions}
)

// CodeOf returns the code carried by err, or 0 if err is nil or not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// Warning records a soft failure: a field or column that could not be read
// and was left at its default.
type Warning struct {
	Field string
	Path  string
	Err   error
}

func (w Warning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("%s: %v", w.Path, w.Err)
	}
	return fmt.Sprintf("%s/%s: %v", w.Path, w.Field, w.Err)
}
