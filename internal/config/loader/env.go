package loader

import (
	"os"
	"strings"
)

// EnvLoader reads configuration from prefixed environment variables:
//
//	<prefix>LOG_LEVEL          log.level
//	<prefix>LOG_FORMAT         log.format
//	<prefix>SPLIT_DELIMITER    split.delimiter
//	<prefix>FILTER_<NAME>      filters.<name>.chain, comma-separated specs
//
// Values are taken verbatim, so a delimiter of "1" or "true" stays a string.
// Other prefixed variables are ignored.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix, which
// should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

const filterVar = "FILTER_"

var envSettings = map[string][2]string{
	"LOG_LEVEL":       {"log", "level"},
	"LOG_FORMAT":      {"log", "format"},
	"SPLIT_DELIMITER": {"split", "delimiter"},
}

// Load implements Loader. It never returns nil.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		key, ok := strings.CutPrefix(name, l.prefix)
		if !ok {
			continue
		}

		if path, ok := envSettings[key]; ok {
			section(out, path[0])[path[1]] = value
			continue
		}
		if filter, ok := strings.CutPrefix(key, filterVar); ok && filter != "" {
			filters := section(out, "filters")
			filters[strings.ToLower(filter)] = map[string]any{"chain": splitSpecs(value)}
		}
	}
	return out, nil
}

// section returns m[name] as a map, creating it if needed.
func section(m map[string]any, name string) map[string]any {
	if s, ok := m[name].(map[string]any); ok {
		return s
	}
	s := make(map[string]any)
	m[name] = s
	return s
}

// splitSpecs splits a comma-separated spec list, dropping blanks.
func splitSpecs(v string) []any {
	var specs []any
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			specs = append(specs, s)
		}
	}
	return specs
}
