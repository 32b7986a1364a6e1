package rewrite

import (
	"fmt"
	"strings"
)

// Strategy selects how normalized docstrings are written back.
type Strategy uint8

const (
	// StrategySpan replaces every docstring at its own byte range.
	StrategySpan Strategy = iota
	// StrategyFirst replaces the first textual occurrence of each distinct
	// original docstring anywhere in the file.
	StrategyFirst
)

func (s Strategy) String() string {
	switch s {
	case StrategySpan:
		return "span"
	case StrategyFirst:
		return "first"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy accepts "span" (also the empty string) or "first".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "span":
		return StrategySpan, nil
	case "first":
		return StrategyFirst, nil
	default:
		return StrategySpan, fmt.Errorf("unknown strategy %q (expected: span|first)", s)
	}
}
