package driver

import (
	"docnorm/internal/ast"
	"docnorm/internal/docstring"
	"docnorm/internal/parser"
	"docnorm/internal/source"
)

// ExtractResult holds the parsed tree and docstrings of one file.
type ExtractResult struct {
	FileSet    *source.FileSet
	File       *source.File
	Builder    *ast.Builder
	ASTFile    ast.FileID
	Docstrings []docstring.DocComment
}

// ExtractFile loads path and collects its docstrings. Syntax errors come
// back as *parser.ParseError next to a result holding only the FileSet and
// File, so callers can render the diagnostics.
func ExtractFile(path string, maxErrors uint) (*ExtractResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	b, astFile, err := parser.Parse(fs, fileID, maxErrors)
	if err != nil {
		return &ExtractResult{FileSet: fs, File: file}, err
	}
	return &ExtractResult{
		FileSet:    fs,
		File:       file,
		Builder:    b,
		ASTFile:    astFile,
		Docstrings: docstring.ExtractTree(b, astFile, file),
	}, nil
}
