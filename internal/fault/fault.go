// Package fault defines the typed failures surfaced at the boundaries of the
// transcript, action, report and mail packages. Each failure carries a
// machine-checkable kind, a human-readable message and an optional
// remediation suggestion that callers are expected to present verbatim.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies a failure category.
type Kind string

const (
	// KindEmptyInput means the transcript content was blank.
	KindEmptyInput Kind = "empty_input"
	// KindMalformedInput means content was non-empty but no messages could
	// be recognized, or an unexpected internal failure aborted a batch.
	KindMalformedInput Kind = "malformed_input"
	// KindInvalidArgument means a caller passed a value of the wrong shape.
	KindInvalidArgument Kind = "invalid_argument"
	// KindUnsupportedFileType means the file extension is not accepted.
	KindUnsupportedFileType Kind = "unsupported_file_type"
	// KindEncodingFailure means content was undecodable under all attempted
	// encodings.
	KindEncodingFailure Kind = "encoding_failure"
	// KindFileNotFound means the transcript path does not exist.
	KindFileNotFound Kind = "file_not_found"
	// KindNotAFile means the transcript path points at a directory.
	KindNotAFile Kind = "not_a_file"
	// KindOutputFailed means a report could not be generated or written.
	KindOutputFailed Kind = "output_failed"
	// KindDeliveryFailed means a summary email could not be sent.
	KindDeliveryFailed Kind = "delivery_failed"
)

// Error is a typed failure with an optional remediation suggestion.
type Error struct {
	Kind       Kind
	Message    string
	Suggestion string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so callers can match with errors.Is against a
// bare &Error{Kind: ...} target.
func (e *Error) Is(target error) bool {
	var fe *Error
	if !errors.As(target, &fe) {
		return false
	}
	return fe.Kind == e.Kind
}

// KindOf returns the kind of err if it is (or wraps) a fault.Error.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// IsKind reports whether err is (or wraps) a fault.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

const supportedFormats = "supported formats: '00:00:00 Name: Message' (Zoom), " +
	"'[00:00:00] Name: Message', '10:30 AM Name: Message' (Meet), 'Name: Message'"

// EmptyTranscript reports blank transcript content.
func EmptyTranscript() *Error {
	return &Error{
		Kind:       KindEmptyInput,
		Message:    "transcript is empty or contains no valid content",
		Suggestion: "ensure the file contains meeting dialogue with speaker names",
	}
}

// MalformedTranscript reports content in which no messages were recognized.
func MalformedTranscript(details string) *Error {
	msg := "transcript format is malformed or unrecognized"
	if details != "" {
		msg += ": " + details
	}
	return &Error{
		Kind:       KindMalformedInput,
		Message:    msg,
		Suggestion: supportedFormats,
	}
}

// InvalidArgument reports a caller-supplied value of the wrong shape.
func InvalidArgument(param, reason string) *Error {
	return &Error{
		Kind:       KindInvalidArgument,
		Message:    fmt.Sprintf("invalid input for %q: %s", param, reason),
		Suggestion: "check the parameter value and try again",
	}
}

// FileNotFound reports a missing transcript file.
func FileNotFound(path string) *Error {
	return &Error{
		Kind:       KindFileNotFound,
		Message:    fmt.Sprintf("file not found: %s", path),
		Suggestion: "check the file path and ensure the file exists",
	}
}

// NotAFile reports a path that resolves to a directory.
func NotAFile(path string) *Error {
	return &Error{
		Kind:       KindNotAFile,
		Message:    fmt.Sprintf("path is not a file: %s", path),
		Suggestion: "point at the transcript file itself, not its directory",
	}
}

// UnsupportedFileType reports a disallowed file extension.
func UnsupportedFileType(ext string) *Error {
	return &Error{
		Kind:       KindUnsupportedFileType,
		Message:    fmt.Sprintf("unsupported file format: %s", ext),
		Suggestion: "only plain text transcripts (.txt) are supported",
	}
}

// EncodingFailure reports content undecodable under all attempted encodings.
func EncodingFailure(tried string) *Error {
	return &Error{
		Kind:       KindEncodingFailure,
		Message:    fmt.Sprintf("unable to read file due to encoding issues (tried: %s)", tried),
		Suggestion: "ensure the file is saved in UTF-8 encoding",
	}
}

// OutputFailed reports a report generation or write failure.
func OutputFailed(details string, err error) *Error {
	return &Error{
		Kind:       KindOutputFailed,
		Message:    "failed to generate or save output: " + details,
		Suggestion: "check file permissions and disk space",
		Err:        err,
	}
}

// DeliveryFailed reports an email delivery failure.
func DeliveryFailed(details string, err error) *Error {
	return &Error{
		Kind:       KindDeliveryFailed,
		Message:    "failed to send summary email: " + details,
		Suggestion: "verify the SMTP settings and credentials",
		Err:        err,
	}
}
