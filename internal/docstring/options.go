package docstring

// UnderlineWidth is the length of the canonical dash underline.
const UnderlineWidth = 8

// Options selects the rules a Normalizer applies and the header names it
// recognizes.
type Options struct {
	RenameHeader      bool
	CollapseUnderline bool
	BlankBeforeHeader bool
	BlankBeforeCode   bool

	// Canonical is the header every alias is renamed to.
	Canonical string
	// Aliases are legacy header names rewritten to Canonical.
	Aliases []string
}

// DefaultOptions enables every rule with "Examples" as the canonical
// header and "Functional Examples" as its only alias.
func DefaultOptions() Options {
	return Options{
		RenameHeader:      true,
		CollapseUnderline: true,
		BlankBeforeHeader: true,
		BlankBeforeCode:   true,
		Canonical:         "Examples",
		Aliases:           []string{"Functional Examples"},
	}
}
