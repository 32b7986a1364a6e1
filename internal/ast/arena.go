package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores statements (or files) of one parse in a flat slice. IDs are
// 1-based so the zero StmtID means "no statement".
type Arena[T any] struct {
	data []T
}

// NewArena preallocates capHint slots; the parser sizes it from the file length.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

// Get returns the slot for index, or nil for 0 and unknown indices.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		// source.Span уже ограничивает файл 4 ГиБ, столько узлов не бывает
		panic(fmt.Errorf("ast arena overflow: %w", err))
	}
	return n
}
