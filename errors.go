package main

import (
	"errors"
	"fmt"
)

// ErrDocumentUnavailable is returned when there is no parsed document to
// convert.
var ErrDocumentUnavailable = errors.New("document failed to parse")

// UnitMismatchError reports a document whose user unit is not the one the
// footprint coordinates are written in.
type UnitMismatchError struct {
	Got, Want string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("SVG units must be %s, document uses %q", e.Want, e.Got)
}

// MalformedPathError reports path data that cannot be decoded.
type MalformedPathError struct {
	Data   string // the offending path data
	Offset int    // byte offset of the problem within Data
	Msg    string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path data %q at offset %d: %s", truncate(e.Data, 40), e.Offset, e.Msg)
}

// TransformError reports a transform attribute that cannot be parsed.
type TransformError struct {
	Value string
	Msg   string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("malformed transform %q: %s", truncate(e.Value, 40), e.Msg)
}

// SinkUnavailableError reports an output destination that cannot be opened.
type SinkUnavailableError struct {
	Path string
	Err  error
}

func (e *SinkUnavailableError) Error() string {
	return fmt.Sprintf("cannot open output %q: %v", e.Path, e.Err)
}

func (e *SinkUnavailableError) Unwrap() error { return e.Err }

// isPathError reports whether err is scoped to a single shape, as opposed
// to the document or the output.
func isPathError(err error) bool {
	var pe *MalformedPathError
	var te *TransformError
	return errors.As(err, &pe) || errors.As(err, &te)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
