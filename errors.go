package wordgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWord is returned when an empty word is added to a Builder.
	ErrEmptyWord = errors.New("wordgraph: empty word")

	// ErrWordTooLong is returned for words longer than MaxWordLength.
	ErrWordTooLong = errors.New("wordgraph: word too long")

	// ErrEmptyCandidate is returned when there is no candidate string to check.
	ErrEmptyCandidate = errors.New("wordgraph: empty candidate")

	// ErrStructure matches every *StructuralError with errors.Is.
	ErrStructure = errors.New("wordgraph: malformed graph")
)

// StructuralError reports a graph file that cannot be loaded. Offset is the
// byte offset of the offending field, or -1 when it does not apply.
type StructuralError struct {
	Reason string
	Offset int64
}

func (e *StructuralError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("wordgraph: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("wordgraph: %s", e.Reason)
}

// Is lets errors.Is(err, ErrStructure) match.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructure
}

func structuralf(offset int64, format string, args ...any) error {
	return &StructuralError{Reason: fmt.Sprintf(format, args...), Offset: offset}
}
