package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadIndent          Code = 1003
	LexUnbalancedBracket  Code = 1004
	LexBadContinuation    Code = 1005
	LexTabSpaceMix        Code = 1006

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectColon      Code = 2002
	SynExpectBlock      Code = 2003
	SynExpectIdentifier Code = 2004
	SynUnexpectedIndent Code = 2005
	SynExpectParams     Code = 2006
	SynAsyncNotAllowed  Code = 2007
	SynDanglingClause   Code = 2008
	SynDecoratorTarget  Code = 2009

	// IO
	IOLoadFileError Code = 4001
)

var codeTitles = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadIndent:          "Unindent does not match any outer indentation level",
	LexUnbalancedBracket:  "Unbalanced bracket",
	LexBadContinuation:    "Unexpected character after line continuation",
	LexTabSpaceMix:        "Inconsistent use of tabs and spaces",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectColon:        "Expected ':'",
	SynExpectBlock:        "Expected an indented block",
	SynExpectIdentifier:   "Expected identifier",
	SynUnexpectedIndent:   "Unexpected indent",
	SynExpectParams:       "Expected parameter list",
	SynAsyncNotAllowed:    "'async' must be followed by def, for or with",
	SynDanglingClause:     "Clause without a leading statement",
	SynDecoratorTarget:    "Decorator must precede def or class",
	IOLoadFileError:       "I/O load file error",
}

// ID returns the stable textual identifier of the code, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
