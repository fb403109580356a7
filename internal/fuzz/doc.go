// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They guard against panics, hangs and broken
// span invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и парсер
// с базовой грамматикой и с расширениями TypedJS.
//
// Не делает: запуск правил, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/typedjs, internal/testkit.
package fuzztests
