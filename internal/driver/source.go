package driver

import (
	"fmt"

	"docnorm/internal/docstring"
	"docnorm/internal/parser"
	"docnorm/internal/pipeline"
	"docnorm/internal/rewrite"
	"docnorm/internal/source"
)

// SourceOptions configures FormatSource.
type SourceOptions struct {
	// Normalizer applied to every docstring; nil means docstring.Normalize
	// with default options.
	Normalizer *docstring.Normalizer
	Strategy   rewrite.Strategy
	MaxErrors  uint

	onStage func(pipeline.Stage)
}

// DocEdit describes one docstring whose normalized form differs.
type DocEdit struct {
	Owner  docstring.Owner
	Name   string
	Pos    source.LineCol
	Before string
	After  string
}

// SourceResult is the outcome of formatting one in-memory file.
type SourceResult struct {
	// Content is the LF-normalized text.
	Content []byte
	// Raw is Content with the BOM and per-line endings the file had on
	// disk. Set only when some docstring changed.
	Raw        []byte
	Changed    bool
	Docstrings int
	Edits      []DocEdit
}

func (o SourceOptions) stage(st pipeline.Stage) {
	if o.onStage != nil {
		o.onStage(st)
	}
}

// FormatSource extracts the docstrings of file id, normalizes each and
// substitutes the changed ones back according to opts.Strategy.
func FormatSource(fs *source.FileSet, id source.FileID, opts SourceOptions) (*SourceResult, error) {
	src := fs.Get(id)
	if src == nil {
		return nil, fmt.Errorf("format: unknown file id %d", id)
	}
	opts.stage(pipeline.StageParse)
	b, file, err := parser.Parse(fs, id, opts.MaxErrors)
	if err != nil {
		return nil, err
	}
	docs := docstring.ExtractTree(b, file, src)

	normalize := docstring.Normalize
	if opts.Normalizer != nil {
		normalize = opts.Normalizer.Normalize
	}

	opts.stage(pipeline.StageNormalize)
	res := &SourceResult{Content: src.Content, Docstrings: len(docs)}
	var (
		edits []rewrite.Edit
		set   = rewrite.NewReplacementSet()
	)
	for _, doc := range docs {
		normalized := normalize(doc.Text)
		if normalized == doc.Text {
			continue
		}
		start, _ := fs.Resolve(doc.Span)
		res.Edits = append(res.Edits, DocEdit{
			Owner:  doc.Owner,
			Name:   doc.OwnerName,
			Pos:    start,
			Before: doc.Text,
			After:  normalized,
		})
		edits = append(edits, rewrite.Edit{Span: doc.Span, OldText: doc.Text, NewText: normalized})
		set.Add(doc.Text, normalized)
	}
	if len(res.Edits) == 0 {
		return res, nil
	}

	if opts.Strategy == rewrite.StrategyFirst {
		edits = rewrite.FirstEdits(src.Content, set)
	}
	out, err := rewrite.Apply(src.Content, edits)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", src.Path, err)
	}
	if res.Raw, err = rewrite.ApplyRaw(src, edits); err != nil {
		return nil, fmt.Errorf("format %s: %w", src.Path, err)
	}
	res.Content = out
	res.Changed = string(out) != string(src.Content)
	return res, nil
}

// FormatText normalizes every docstring in text with default options and
// reports whether anything changed. BOM and CRLF line endings survive.
// Invalid Python yields a *parser.ParseError.
func FormatText(name, text string) (string, bool, error) {
	fs := source.NewFileSet()
	id := fs.AddNormalized(name, []byte(text))
	res, err := FormatSource(fs, id, SourceOptions{})
	if err != nil {
		return text, false, err
	}
	if !res.Changed {
		return text, false, nil
	}
	return string(res.Raw), true, nil
}
