package shape

import "fmt"

// UnsupportedKindError reports a shape whose Kind is outside the defined
// enumeration. This is a caller contract violation, not geometric
// degeneracy, so it surfaces as an error rather than an empty plan.
type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported shape kind %q", string(e.Kind))
}

// UnsupportedPatternError reports a fill pattern outside the defined
// enumeration.
type UnsupportedPatternError struct {
	Pattern FillPattern
}

func (e *UnsupportedPatternError) Error() string {
	return fmt.Sprintf("unsupported fill pattern %q", string(e.Pattern))
}
