package driver

import (
	"path/filepath"

	"cardgen/internal/decl"
	"cardgen/internal/diag"
	"cardgen/internal/lexer"
	"cardgen/internal/source"
	"cardgen/internal/token"
)

// TokenizeResult holds the tokens of one standalone file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// loadStandalone reads a single file outside any version tree.
func loadStandalone(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}
	fileID, err := fs.LoadVersion(filepath.Dir(abs), filepath.Base(abs), "file")
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(fileID), nil
}

// Tokenize lexes path up to EOF and collects lexer diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs, file, err := loadStandalone(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}

// DeclsResult holds the declarations of one standalone file.
type DeclsResult struct {
	FileSet *source.FileSet
	File    *source.File
	Decls   *decl.File
	Bag     *diag.Bag
}

// ParseDecls extracts declarations from path. A parse error is returned
// together with the result so the caller can still print the diagnostics.
func ParseDecls(path string, maxDiagnostics int) (*DeclsResult, error) {
	fs, file, err := loadStandalone(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	f, err := decl.Parse(file, decl.Options{Reporter: diag.BagReporter{Bag: bag}, MaxDiagnostics: maxDiagnostics})
	res := &DeclsResult{FileSet: fs, File: file, Decls: f, Bag: bag}
	return res, err
}
