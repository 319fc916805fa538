package source

import "fmt"

// FileID indexes a file inside its FileSet. IDs are dense and start at 0.
type FileID uint32

// FileFlags records how the content of a file was obtained and normalized.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // добавлен из памяти (тесты, tokenize)
	FileHadBOM                               // UTF-8 BOM срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is one version of one source file. LineIdx holds the offsets of
// every '\n' in Content. A File is never mutated after it has been added
// to a FileSet.
type File struct {
	ID      FileID
	Path    string // relative to the tree root, slash-separated
	Version string // version tag of the tree the file came from
	Content []byte
	LineIdx []uint32
	Hash    [32]byte // sha256 of the normalized content
	Flags   FileFlags
}

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends s so that it also includes other. Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

// Contains reports whether inner lies within s in the same file.
func (s Span) Contains(inner Span) bool {
	return s.File == inner.File && inner.Start >= s.Start && inner.End <= s.End
}

// Len is the length of s in bytes.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// LineCol is a 1-based line and column; columns count bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
