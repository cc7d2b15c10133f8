package types

import (
	"errors"
	"fmt"
)

// Error classes surfaced by the pipeline. Concrete errors wrap one of these so callers
// can branch with errors.Is.
var (
	ErrIO            = errors.New("io error")
	ErrParse         = errors.New("parse error")
	ErrLookup        = errors.New("lookup error")
	ErrNoData        = errors.New("no data")
	ErrRender        = errors.New("render error")
	ErrInvalidConfig = errors.New("invalid config")
)

// ParseError describes a malformed history log line.
type ParseError struct {
	Line  int    // 1-based line number
	Field string // "time", "value", "state" or "" when the field count is wrong
	Text  string // the raw line
	Err   error  // underlying strconv error, if any
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: expected 3 tab-separated fields, got %q", e.Line, e.Text)
	}
	if e.Err != nil {
		return fmt.Sprintf("line %d: bad %s field: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("line %d: bad %s field in %q", e.Line, e.Field, e.Text)
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// NoDataf returns an error wrapping ErrNoData with context.
func NoDataf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNoData)
}
