package codec

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse failure")
	// ErrUnsupportedAttribute is returned by strict serializers when a
	// format cannot represent a style or interaction feature. Default
	// serializers drop such attributes silently.
	ErrUnsupportedAttribute = errors.New("unsupported attribute")
	// ErrUnknownFormat is returned for unrecognized format names.
	ErrUnknownFormat = errors.New("unknown format")
)

// Reasons used by the built-in parsers.
const (
	ReasonUnterminatedTag = "unterminated tag"
	ReasonUnknownTag      = "unknown tag"
	ReasonMalformedEscape = "malformed escape"
	ReasonUnbalanced      = "unbalanced nesting"
	ReasonUnclosedTag     = "unclosed tag"
	ReasonUnknownCode     = "unknown code"
	ReasonInvalidArgument = "invalid argument"
	ReasonSyntax          = "syntax error"
	ReasonInvalidEncoding = "invalid utf-8"
)

// ParseError reports where and why strict parsing failed. Pos is a byte
// offset into the input.
type ParseError struct {
	Format Format
	Pos    int
	Reason string
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s at offset %d", e.Format, e.Reason, e.Pos)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a *ParseError.
func NewParseError(format Format, pos int, reason, detail string) *ParseError {
	return &ParseError{Format: format, Pos: pos, Reason: reason, Detail: detail}
}

// CheckUTF8 returns a ParseError at the first byte of input that is not
// valid UTF-8, or nil.
func CheckUTF8(format Format, input string) error {
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			return NewParseError(format, i, ReasonInvalidEncoding, fmt.Sprintf("byte 0x%02x", input[i]))
		}
		i += size
	}
	return nil
}

// AsParseError extracts a *ParseError from err.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
