// Package diag defines the diagnostic model shared by the lexer and the
// declaration parser.
//
// # Scope
//
// Package diag performs no IO. Producers emit through a Reporter; BagReporter
// aggregates into a bounded Bag that supports deterministic sorting and
// deduplication. FormatShort renders diagnostics one per line for degraded
// cards and CLI output.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with stable string form (LEX1002).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
//
// Keep the model deterministic: card output embeds formatted diagnostics, and
// the generator guarantees byte-identical output across runs.
package diag
