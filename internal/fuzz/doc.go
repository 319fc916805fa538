// Package fuzztests houses Go fuzz harnesses that exercise the extraction
// pipeline (source -> lexer -> decl). Its goal is to smoke test robustness
// and guard against panics or hangs on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// извлечение деклараций, проверяя инварианты спанов.
//
// Не делает: сравнение версий, генерацию карточек, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/decl, internal/diag,
// internal/testkit.
package fuzztests
