// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Diagnostic is the central record: severity, a compact numeric Code with a
// stable string form (LEX1002, SYN2003, ...), a short message, the primary
// source.Span, and optional notes.
//
// Phases emit through a Reporter so they do not depend on storage. BagReporter
// collects into a Bag, which enforces a limit and sorts deterministically.
// Package diag performs no IO; FormatShort is the only rendering helper and is
// used for error messages and the CLI.
package diag
