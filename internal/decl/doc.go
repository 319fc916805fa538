// Package decl extracts top-level declarations from a Zig source file.
//
// The pass is structural only: it works on the token stream, balances
// delimiters and recognizes `fn`, `const`/`var` items, container bodies
// (one level of members) and fields. Expressions are kept as raw token
// text and never interpreted.
package decl
