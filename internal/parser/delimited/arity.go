package delimited

import (
	"errors"
	"fmt"
)

// ErrArityMismatch is matched by every *ArityError.
var ErrArityMismatch = errors.New("delimited: column count does not match header")

// ArityError reports a row whose column count differs from the header's.
type ArityError struct {
	Line int // 1-based line number within the source, 0 when unknown
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("delimited: line %d: got %d columns, header has %d", e.Line, e.Got, e.Want)
	}
	return fmt.Sprintf("delimited: got %d columns, header has %d", e.Got, e.Want)
}

// Is lets errors.Is(err, ErrArityMismatch) succeed.
func (e *ArityError) Is(target error) bool { return target == ErrArityMismatch }

// CheckArity returns an *ArityError when len(fields) != want.
func CheckArity(fields []string, want, line int) error {
	if len(fields) == want {
		return nil
	}
	return &ArityError{Line: line, Want: want, Got: len(fields)}
}
