package docstring

import (
	"docnorm/internal/ast"
	"docnorm/internal/source"
)

// Owner is the kind of declaration a docstring belongs to.
type Owner uint8

const (
	OwnerModule Owner = iota
	OwnerFunction
	OwnerAsyncFunction
	OwnerClass
	OwnerAsyncFor
)

var ownerNames = [...]string{
	OwnerModule:        "module",
	OwnerFunction:      "function",
	OwnerAsyncFunction: "async function",
	OwnerClass:         "class",
	OwnerAsyncFor:      "async for",
}

func (o Owner) String() string {
	if int(o) < len(ownerNames) {
		return ownerNames[o]
	}
	return "unknown"
}

func ownerOf(kind ast.StmtKind) (Owner, bool) {
	switch kind {
	case ast.StmtFunctionDef:
		return OwnerFunction, true
	case ast.StmtAsyncFunctionDef:
		return OwnerAsyncFunction, true
	case ast.StmtClassDef:
		return OwnerClass, true
	case ast.StmtAsyncFor:
		return OwnerAsyncFor, true
	}
	return 0, false
}

// DocComment is one docstring found in a file.
type DocComment struct {
	// Text is the raw body between the quotes: no escape processing and no
	// whitespace stripping.
	Text string
	// Span covers Text inside the source file.
	Span      source.Span
	Owner     Owner
	OwnerName string // empty for the module and async-for loops
	Prefix    string // "", "r", "u" in any case
	Quote     string // `"""`, `'''`, `"` or `'`
}
