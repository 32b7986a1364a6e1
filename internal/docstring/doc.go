// Package docstring finds Python docstrings and normalizes their
// numpydoc-style Examples sections.
//
// Extract walks a parsed module and returns the raw body of every docstring
// attached to the module, to functions, classes and async-for loops.
// Normalize rewrites one body with four line-scanning rules:
//
//  1. "Functional Examples" followed by a dash underline becomes "Examples"
//     with an underline of exactly eight dashes;
//  2. an over-long underline below "Examples" is cut to eight dashes and
//     stray dash lines after it are dropped;
//  3. an "Examples" header glued to the previous line gets an empty line
//     above it;
//  4. every interactive block (lines starting with ">>>") is separated from
//     preceding text by an empty line.
//
// Normalize is idempotent and never fails.
package docstring
