package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// memFS is an in-memory FileSystem keyed by cleaned path.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func TestFile_LoadTOML(t *testing.T) {
	memfs := memFS{"/fsview.toml": `
[log]
level = "debug"

[filters.letters]
chain = ["alpha", "not:upper"]
include_source = true
`}

	config, err := NewFile(memfs, "/fsview.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "log.level"); !ok || val != "debug" {
		t.Errorf("log.level = %v, want 'debug'", val)
	}
	chain, ok := getByPath(config, "filters.letters.chain")
	if list, isList := chain.([]any); !ok || !isList || len(list) != 2 || list[0] != "alpha" {
		t.Errorf("chain = %v, want [alpha not:upper]", chain)
	}
	if val, _ := getByPath(config, "filters.letters.include_source"); val != true {
		t.Errorf("include_source = %v, want true", val)
	}
}

func TestFile_LoadYAML(t *testing.T) {
	memfs := memFS{"/fsview.yaml": `
log:
  level: warn
filters:
  vowels:
    lua: |
      function accept(c) return c == "a" end
`}

	config, err := NewFile(memfs, "/fsview.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, _ := getByPath(config, "log.level"); val != "warn" {
		t.Errorf("log.level = %v, want 'warn'", val)
	}
	lua, _ := getByPath(config, "filters.vowels.lua")
	if s, ok := lua.(string); !ok || !strings.Contains(s, "function accept") {
		t.Errorf("filters.vowels.lua = %v", lua)
	}
}

func TestFile_LoadMissing(t *testing.T) {
	config, err := NewFile(memFS{}, "/nonexistent.toml").Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestFile_LoadEmpty(t *testing.T) {
	for _, path := range []string{"/empty.toml", "/empty.yaml"} {
		config, err := NewFile(memFS{path: ""}, path).Load()
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if config == nil || len(config) != 0 {
			t.Errorf("%s: config = %v, want empty map", path, config)
		}
	}
}

func TestFile_ParseErrors(t *testing.T) {
	tests := []struct {
		path    string
		content string
	}{
		{"/invalid.toml", "\n[log\nlevel = 4\n"},
		{"/invalid.yml", "log:\n  level: debug\n bad: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := NewFile(memFS{tt.path: tt.content}, tt.path).Load()

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if perr.Path != tt.path {
				t.Errorf("Path = %q, want %q", perr.Path, tt.path)
			}
			if perr.Line == 0 {
				t.Errorf("expected a line number in %v", perr)
			}
		})
	}
}

func TestFile_Includes(t *testing.T) {
	tests := []struct {
		name string
		main string
		base string
	}{
		{
			name: "/conf/main.toml",
			main: `
"@include" = "base.toml"

[log]
level = "error"
`,
			base: `/conf/base.toml`,
		},
		{
			name: "/conf/main.yaml",
			main: `
"@include": [base.toml]
log:
  level: error
`,
			base: `/conf/base.toml`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := memFS{
				tt.name: tt.main,
				tt.base: `
[log]
level = "info"
format = "text"

[filters.digits]
chain = ["digit"]
`,
			}

			config, err := NewFile(memfs, tt.name).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if _, ok := config[IncludeKey]; ok {
				t.Error("@include should be removed")
			}
			if val, _ := getByPath(config, "log.level"); val != "error" {
				t.Errorf("log.level = %v, want 'error'", val)
			}
			if val, _ := getByPath(config, "log.format"); val != "text" {
				t.Errorf("log.format = %v, want 'text'", val)
			}
			if _, ok := getByPath(config, "filters.digits"); !ok {
				t.Error("expected filters.digits from include")
			}
		})
	}
}

func TestFile_IncludeOrder(t *testing.T) {
	memfs := memFS{
		"/main.yaml": "\"@include\": [a.yaml, b.yaml]\n",
		"/a.yaml":    "split:\n  delimiter: a\n",
		"/b.yaml":    "split:\n  delimiter: b\n",
	}

	config, err := NewFile(memfs, "/main.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, _ := getByPath(config, "split.delimiter"); val != "b" {
		t.Errorf("split.delimiter = %v, want later include to win", val)
	}
}

func TestFile_IncludeErrors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		memfs := memFS{
			"/a.toml": `"@include" = "b.yaml"`,
			"/b.yaml": `"@include": a.toml`,
		}
		_, err := NewFile(memfs, "/a.toml").Load()
		if !errors.Is(err, ErrIncludeCycle) {
			t.Errorf("expected ErrIncludeCycle, got %v", err)
		}
	})

	t.Run("depth", func(t *testing.T) {
		memfs := memFS{
			"/1.toml": `"@include" = "2.toml"`,
			"/2.toml": `"@include" = "3.toml"`,
			"/3.toml": `"@include" = "4.toml"`,
			"/4.toml": ``,
		}
		_, err := NewFile(memfs, "/1.toml").WithMaxDepth(2).Load()
		if !errors.Is(err, ErrIncludeDepthExceeded) {
			t.Errorf("expected ErrIncludeDepthExceeded, got %v", err)
		}
		if _, err := NewFile(memfs, "/1.toml").WithMaxDepth(3).Load(); err != nil {
			t.Errorf("depth 3: %v", err)
		}
	})

	t.Run("missing include", func(t *testing.T) {
		_, err := NewFile(memFS{"/a.toml": `"@include" = "gone.toml"`}, "/a.toml").Load()
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("bad directive", func(t *testing.T) {
		_, err := NewFile(memFS{"/a.toml": `"@include" = 3`}, "/a.toml").Load()
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"fsview.toml", TOML},
		{"fsview.yaml", YAML},
		{"fsview.YML", YAML},
		{"fsview", TOML},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	base := map[string]any{
		"log":   map[string]any{"level": "info", "format": "text"},
		"split": map[string]any{"delimiter": ","},
	}
	top := map[string]any{
		"log":     map[string]any{"level": "debug"},
		"split":   "replaced",
		"filters": map[string]any{},
	}

	out := Merge(base, top)
	if val, _ := getByPath(out, "log.level"); val != "debug" {
		t.Errorf("log.level = %v, want debug", val)
	}
	if val, _ := getByPath(out, "log.format"); val != "text" {
		t.Errorf("log.format = %v, want text", val)
	}
	if out["split"] != "replaced" {
		t.Errorf("split = %v, want replaced", out["split"])
	}
	if _, ok := out["filters"]; !ok {
		t.Error("expected filters key")
	}

	if val, _ := getByPath(base, "log.level"); val != "info" {
		t.Errorf("base modified: log.level = %v", val)
	}
	if got := Merge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("Merge(nil, nil) = %v, want empty map", got)
	}
}

// getByPath gets a value from a nested map using a dot-separated path.
func getByPath(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
