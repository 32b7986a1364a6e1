
// Package fuzztests houses Go fuzz harnesses that exercise the docnorm
// pipeline (source -> lexer -> parser -> docstring extraction -> rewrite).
// Its goal is to smoke test robustness and guard against panics, hangs and
// broken span bookkeeping on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и нормализацию докстрингов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/docstring, internal/driver, internal/testkit.

package fuzztests
