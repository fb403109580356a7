// Package token defines lexical token kinds and comment trivia for TypedJS sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Only reserved words get keyword kinds. Contextual words (let, of, async,
//     await, yield, static, get, set, as, type, interface, readonly...) are
//     identifiers and are recognised by the parser from their text.
//   - Comments never appear in the token stream; they are reported as Trivia.
//   - NewlineBefore is the only layout information the parser needs (ASI,
//     restricted productions such as `return\nx`).
package token
