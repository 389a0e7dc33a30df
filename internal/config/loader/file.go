package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
)

// IncludeKey names the directive that pulls other files in underneath the
// current one. Its value is a path or a list of paths, relative to the
// including file. Included files may use either format.
const IncludeKey = "@include"

// DefaultMaxIncludeDepth bounds include nesting.
const DefaultMaxIncludeDepth = 8

// File loads a configuration file and everything it includes.
type File struct {
	fs       FileSystem
	path     string
	maxDepth int
}

// NewFile creates a loader for path. A nil fsys reads from the OS.
func NewFile(fsys FileSystem, path string) *File {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &File{fs: fsys, path: path, maxDepth: DefaultMaxIncludeDepth}
}

// WithMaxDepth sets the include nesting limit.
func (f *File) WithMaxDepth(n int) *File {
	f.maxDepth = n
	return f
}

// Load implements Loader. A missing top-level file is not an error; a
// missing include is.
func (f *File) Load() (map[string]any, error) {
	return f.load(f.path, nil)
}

// load reads path, then merges its includes beneath it. chain holds the
// files currently being loaded, outermost first.
func (f *File) load(path string, chain []string) (map[string]any, error) {
	clean := filepath.Clean(path)
	if slices.Contains(chain, clean) {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, clean)
	}
	if len(chain) > f.maxDepth {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, clean)
	}

	data, err := f.fs.ReadFile(clean)
	if err != nil {
		if len(chain) == 0 && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", clean, err)
	}
	m, err := decode(FormatOf(clean), clean, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(clean, m[IncludeKey])
	if err != nil {
		return nil, err
	}
	delete(m, IncludeKey)

	chain = append(chain, clean)
	base := map[string]any{}
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(clean), inc)
		}
		sub, err := f.load(inc, chain)
		if err != nil {
			return nil, err
		}
		base = Merge(base, sub)
	}
	return Merge(base, m), nil
}

func includeList(path string, v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ParseError{Path: path, Message: IncludeKey + " entries must be strings"}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, &ParseError{Path: path, Message: fmt.Sprintf("%s must be a path or list of paths, got %T", IncludeKey, v)}
}
