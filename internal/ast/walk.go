package ast

// Visitor's Visit method is invoked for each statement encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// the statement with w.
type Visitor interface {
	Visit(id StmtID, stmt *Stmt) (w Visitor)
}

// Walk обходит операторы в порядке следования в исходнике (pre-order):
// сначала сам оператор, затем его тело, затем клаузы elif/else/except/finally.
func Walk(b *Builder, v Visitor, ids []StmtID) {
	for _, id := range ids {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		w := v.Visit(id, stmt)
		if w == nil {
			continue
		}
		Walk(b, w, stmt.Body)
		for _, cl := range stmt.Clauses {
			Walk(b, w, cl.Body)
		}
	}
}

type inspector func(StmtID, *Stmt) bool

func (f inspector) Visit(id StmtID, stmt *Stmt) Visitor {
	if f(id, stmt) {
		return f
	}
	return nil
}

// Inspect traverses ids in document order, calling f for every statement.
// If f returns false, the statement's body and clauses are skipped.
func (b *Builder) Inspect(ids []StmtID, f func(id StmtID, stmt *Stmt) bool) {
	Walk(b, inspector(f), ids)
}

// InspectFile walks every statement of the file.
func (b *Builder) InspectFile(file FileID, f func(id StmtID, stmt *Stmt) bool) {
	if fl := b.Files.Get(file); fl != nil {
		b.Inspect(fl.Body, f)
	}
}
