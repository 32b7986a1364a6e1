package diag

import (
	"fmt"
	"strings"
)

// Severity ranks a diagnostic. Only blocking severities make a file
// unformattable: docnorm never rewrites code it could not parse.
type Severity uint8

const (
	// SevInfo is a remark; it never affects the outcome.
	SevInfo Severity = iota
	// SevWarning marks input the parser recovered from.
	SevWarning
	// SevError means the file is skipped and reported as failed.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Blocking reports whether a diagnostic of this severity stops the file
// from being formatted.
func (s Severity) Blocking() bool {
	return s >= SevError
}

// ParseSeverity accepts the names String returns, in any case.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Severity(i), nil // #nosec G115 -- three entries
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected: info|warning|error)", name)
}

// MarshalText writes the String form, so JSON output reads "ERROR".
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
