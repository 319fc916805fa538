// Package differ aligns the public declarations of two versions of a file
// and classifies each signature change into migration categories.
//
// Classification is a heuristic over tokens. Rules run in priority order
// (allocator, I/O, error handling, construction) and several categories
// may apply to one declaration; when none applies but the tokens differ
// the change is reported as api_structure_changed with low confidence.
package differ
