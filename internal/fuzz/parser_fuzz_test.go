package fuzztests

import (
	"errors"
	"testing"
	"time"

	"docnorm/internal/docstring"
	"docnorm/internal/parser"
	"docnorm/internal/source"
	"docnorm/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserExtract(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddNormalized("fuzz.py", input)
		file := fs.Get(fileID)

		b, astFile, err := parser.Parse(fs, fileID, 128)
		if err != nil {
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(b, astFile, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
		if err := testkit.CheckDocstrings(docstring.ExtractTree(b, astFile, file), file); err != nil {
			t.Fatalf("docstring invariants: %v", err)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("def f():\n    pass\n  x = 1\n"))      // dedent to unknown level
	f.Add([]byte("class C(\n    x\n"))                  // unclosed bracket at EOF
	f.Add([]byte("if x:\nelse:\n"))                     // empty blocks
	f.Add([]byte("def f(): \\\n"))                      // trailing continuation
	f.Add([]byte("async\nfor\nasync for x in y: pass")) // stray keywords

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			fileID := fs.AddNormalized("fuzz.py", input)
			_, _, _ = parser.Parse(fs, fileID, 128)
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
