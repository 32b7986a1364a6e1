package ast

import (
	"docnorm/internal/source"
	"docnorm/internal/token"
)

type StmtKind uint8

const (
	// StmtSimple covers every statement that fits on one logical line:
	// expressions, assignments, imports, pass, return and so on.
	StmtSimple StmtKind = iota
	StmtFunctionDef
	StmtAsyncFunctionDef
	StmtClassDef
	StmtFor
	StmtAsyncFor
	StmtIf
	StmtWhile
	StmtWith
	StmtAsyncWith
	StmtTry
	StmtMatch
	StmtCase
	// StmtCompound is any other colon-headed block.
	StmtCompound
)

var stmtKindNames = [...]string{
	StmtSimple:           "Simple",
	StmtFunctionDef:      "FunctionDef",
	StmtAsyncFunctionDef: "AsyncFunctionDef",
	StmtClassDef:         "ClassDef",
	StmtFor:              "For",
	StmtAsyncFor:         "AsyncFor",
	StmtIf:               "If",
	StmtWhile:            "While",
	StmtWith:             "With",
	StmtAsyncWith:        "AsyncWith",
	StmtTry:              "Try",
	StmtMatch:            "Match",
	StmtCase:             "Case",
	StmtCompound:         "Compound",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Unknown"
}

// IsDef reports whether the statement introduces a named scope.
func (k StmtKind) IsDef() bool {
	return k == StmtFunctionDef || k == StmtAsyncFunctionDef || k == StmtClassDef
}

// Clause is a continuation of a compound statement: elif, else, except,
// finally.
type Clause struct {
	Keyword string
	Span    source.Span
	Body    []StmtID
}

type Stmt struct {
	Kind StmtKind
	Span source.Span

	// def / class
	Name       string
	NameSpan   source.Span
	Decorators []source.Span

	Body    []StmtID
	Clauses []Clause

	// Literal is set for a simple statement that consists of exactly one
	// string literal token.
	Literal *token.Token
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind: kind,
		Span: span,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
