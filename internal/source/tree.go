package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions lists the file extensions paired when TreeOptions.Extensions is empty.
var DefaultExtensions = []string{".zig"}

// TreeOptions controls which files PairTrees enumerates.
type TreeOptions struct {
	Extensions []string // e.g. ".zig"; empty means DefaultExtensions
}

// Pair is one relative path seen in the old tree, the new tree, or both.
// OldErr/NewErr hold a *LoadError when the walk could not read that entry;
// the side still counts as present.
type Pair struct {
	Rel    string // slash-separated path relative to the roots
	InOld  bool
	InNew  bool
	OldAbs string
	NewAbs string
	OldErr error
	NewErr error
}

// Added reports whether the file exists only in the new tree.
func (p Pair) Added() bool { return p.InNew && !p.InOld }

// Removed reports whether the file exists only in the old tree.
func (p Pair) Removed() bool { return p.InOld && !p.InNew }

// PairTrees enumerates both roots and matches files by relative path.
// The result is sorted by Rel.
func PairTrees(oldRoot, newRoot string, opts TreeOptions) ([]Pair, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	oldFiles, err := listTree(oldRoot, exts)
	if err != nil {
		return nil, err
	}
	newFiles, err := listTree(newRoot, exts)
	if err != nil {
		return nil, err
	}

	byRel := make(map[string]*Pair, len(oldFiles)+len(newFiles))
	for rel, e := range oldFiles {
		byRel[rel] = &Pair{Rel: rel, InOld: true, OldAbs: e.abs, OldErr: e.err}
	}
	for rel, e := range newFiles {
		p, ok := byRel[rel]
		if !ok {
			p = &Pair{Rel: rel}
			byRel[rel] = p
		}
		p.InNew = true
		p.NewAbs = e.abs
		p.NewErr = e.err
	}

	out := make([]Pair, 0, len(byRel))
	for _, p := range byRel {
		out = append(out, *p)
	}
	// Сортируем для детерминированного порядка
	sort.Slice(out, func(i, j int) bool { return out[i].Rel < out[j].Rel })
	return out, nil
}

// CheckRoot verifies that root exists, is a directory and can be listed.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &LoadError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &LoadError{Path: root, Err: fmt.Errorf("not a directory")}
	}
	f, err := os.Open(root)
	if err != nil {
		return &LoadError{Path: root, Err: err}
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &LoadError{Path: root, Err: err}
	}
	return nil
}

// walkDir is replaced in tests to simulate unreadable entries.
var walkDir = filepath.WalkDir

type treeEntry struct {
	abs string
	err error // ошибка обхода для этой записи
}

// listTree collects matching files under root. Only a broken root is fatal;
// an unreadable entry below it is recorded and the walk goes on.
func listTree(root string, exts []string) (map[string]treeEntry, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	files := make(map[string]treeEntry)
	err := walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return &LoadError{Path: path, Err: err}
			}
			if d != nil && !d.IsDir() && !hasExt(path, exts) {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return &LoadError{Path: path, Err: relErr}
			}
			files[normalizePath(rel)] = treeEntry{abs: path, err: &LoadError{Path: path, Err: err}}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExt(path, exts) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return &LoadError{Path: path, Err: err}
		}
		files[normalizePath(rel)] = treeEntry{abs: path}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "zig-cache" || name == "zig-out"
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
