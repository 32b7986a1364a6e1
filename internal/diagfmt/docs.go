package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"docnorm/internal/docstring"
	"docnorm/internal/source"
)

// DocstringJSON describes one extracted docstring.
type DocstringJSON struct {
	Owner    string       `json:"owner"`
	Name     string       `json:"name,omitempty"`
	Prefix   string       `json:"prefix,omitempty"`
	Quote    string       `json:"quote"`
	Location LocationJSON `json:"location"`
	Text     string       `json:"text"`
}

// FormatDocstringsPretty prints each docstring under an "owner name at
// line:col" heading, body lines prefixed with "| ".
func FormatDocstringsPretty(w io.Writer, docs []docstring.DocComment, fs *source.FileSet) error {
	for i, doc := range docs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		pos, _ := fs.Resolve(doc.Span)
		heading := doc.Owner.String()
		if doc.OwnerName != "" {
			heading += " " + doc.OwnerName
		}
		if _, err := fmt.Fprintf(w, "%s at %d:%d\n", heading, pos.Line, pos.Col); err != nil {
			return err
		}
		for line := range strings.SplitSeq(doc.Text, "\n") {
			if _, err := fmt.Fprintf(w, "  | %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatDocstringsJSON writes docs as an indented JSON array.
func FormatDocstringsJSON(w io.Writer, docs []docstring.DocComment, fs *source.FileSet, pathMode PathMode) error {
	out := make([]DocstringJSON, 0, len(docs))
	for _, doc := range docs {
		out = append(out, DocstringJSON{
			Owner:    doc.Owner.String(),
			Name:     doc.OwnerName,
			Prefix:   doc.Prefix,
			Quote:    doc.Quote,
			Location: makeLocation(doc.Span, fs, pathMode, true),
			Text:     doc.Text,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
