package vocabimport

import "slices"

// Reason is the machine-checkable cause of an invalid import row.
type Reason string

const (
	ReasonWrongColumnCount     Reason = "wrong_column_count"
	ReasonNonNumericLevel      Reason = "non_numeric_level"
	ReasonLevelOutOfRange      Reason = "level_out_of_range"
	ReasonMissingRequiredField Reason = "missing_required_field"
)

var reasons = []Reason{
	ReasonWrongColumnCount,
	ReasonNonNumericLevel,
	ReasonLevelOutOfRange,
	ReasonMissingRequiredField,
}

// Reasons returns every known reason, in check order.
func Reasons() []Reason {
	return slices.Clone(reasons)
}

// IsValid reports whether r belongs to the known set.
func (r Reason) IsValid() bool {
	return slices.Contains(reasons, r)
}

// Message returns the human-readable description shown to administrators.
func (r Reason) Message() string {
	switch r {
	case ReasonWrongColumnCount:
		return "wrong number of columns"
	case ReasonNonNumericLevel:
		return "level is not a number"
	case ReasonLevelOutOfRange:
		return "level is out of range"
	case ReasonMissingRequiredField:
		return "simplified, pinyin and english are required"
	default:
		return string(r)
	}
}
