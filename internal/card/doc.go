// Package card builds and renders markdown migration cards.
//
// A Card is plain data: it keeps the classified changes as rendered text
// rather than declaration pointers, so cards can be cached on disk and
// rendered again without the parsed sources.
package card
