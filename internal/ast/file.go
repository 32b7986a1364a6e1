package ast

import (
	"docnorm/internal/source"
)

// File is the root of a parsed module. Body holds the top-level statements.
type File struct {
	Span   source.Span
	Source source.FileID
	Body   []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:   sp,
		Source: sp.File,
		Body:   make([]StmtID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
