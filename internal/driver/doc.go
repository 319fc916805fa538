// Package driver runs the card pipeline over two version trees: pairing,
// per-file parse and diff on a bounded worker pool, card assembly, corpus
// indexing and atomic output.
package driver
