package diag

import "fmt"

// Severity defines the importance of a diagnostic. The numeric values match
// the configuration levels (1 = warn, 2 = error).
type Severity uint8

const (
	// SevWarning does not fail the run.
	SevWarning Severity = 1
	// SevError makes the run exit with status 1.
	SevError Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity accepts "warn", "warning", "error", 1 and 2.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warn", "warning", "1":
		return SevWarning, nil
	case "error", "2":
		return SevError, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}
