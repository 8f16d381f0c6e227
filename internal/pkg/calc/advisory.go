package calc

// Advisory marks a result that carries a user-facing notice instead of, or
// in addition to, computed values. Advisories are never returned as errors.
type Advisory int

// Constants of Advisory
const (
	None Advisory = iota
	MissingInput
	OutOfRange
)

func (a Advisory) String() string {
	switch a {
	case MissingInput:
		return "missing-input"
	case OutOfRange:
		return "out-of-range"
	}
	return "none"
}
