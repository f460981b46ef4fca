package genfile

import (
	"errors"
	"fmt"
)

// ErrTrustNotFound is returned when the supplied aggregate carries no trust
// data. An empty submission file would be rejected by SARS, so generation
// refuses to start.
var ErrTrustNotFound = errors.New("trust not found")

// NumericError reports a captured value that should be an amount but does
// not parse as one. Defaulting it to zero would silently corrupt the trailer
// hash and total, so generation aborts instead.
type NumericError struct {
	Field string
	Value string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q as an amount", e.Field, e.Value)
}

// EncodingError reports a rendered line that is not representable in
// ISO-8859-1. SARS rejects UTF-8 multibyte sequences, so the file must not
// leave the assembler.
type EncodingError struct {
	Line int  // 1-based line number in the generated file
	Rune rune // first offending character, if identified
}

func (e *EncodingError) Error() string {
	if e.Rune != 0 {
		return fmt.Sprintf("line %d: character %q is not representable in ISO-8859-1", e.Line, e.Rune)
	}
	return fmt.Sprintf("line %d: content is not representable in ISO-8859-1", e.Line)
}
