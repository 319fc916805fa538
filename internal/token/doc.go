// Package token defines lexical token kinds and trivia for Zig source files.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Builtin calls are lexed as a single Builtin token ("@import"); quoted
//     identifiers (@"name") are Ident tokens whose Text keeps the quoting.
//   - Comments never appear in the main token stream; they are leading Trivia.
//     Doc comments (///) and container doc comments (//!) have their own kinds.
//   - Primitive type names (u8, i32, usize, ...) are identifiers.
package token
