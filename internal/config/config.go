package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dshills/fsview/internal/config/loader"
	"github.com/dshills/fsview/internal/logging"
	"github.com/dshills/fsview/internal/predicate"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "FSVIEW_"

// Config is the typed fsview configuration.
type Config struct {
	Log     LogConfig            `yaml:"log"`
	Split   SplitConfig          `yaml:"split"`
	Filters map[string]FilterDef `yaml:"filters"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// SplitConfig configures the split command.
type SplitConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// FilterDef defines a named filter.
type FilterDef struct {
	// Chain lists predicate specs ANDed in order.
	Chain []string `yaml:"chain"`
	// Lua is a script defining accept(c, off), ANDed after Chain.
	Lua string `yaml:"lua"`
	// IncludeSource also ANDs the predicate of the view the filter is
	// applied to.
	IncludeSource bool `yaml:"include_source"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Split: SplitConfig{
			Delimiter: ",",
		},
		Filters: map[string]FilterDef{},
	}
}

// Options controls Load.
type Options struct {
	// Path is the configuration file, TOML or YAML by extension. Empty
	// means no file.
	Path string
	// FS reads the file and its includes. Defaults to the OS file system.
	FS loader.FileSystem
	// Env loads environment overrides. Defaults to FSVIEW_* variables;
	// set SkipEnv to ignore the environment.
	Env     loader.Loader
	SkipEnv bool
	// Logger receives load diagnostics.
	Logger *logrus.Logger
}

// Load merges defaults, the configuration file and the environment.
func Load(opts Options) (*Config, error) {
	log := logging.Component(opts.Logger, "config")

	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	if opts.Path != "" {
		fileMap, err := loader.NewFile(opts.FS, opts.Path).Load()
		if err != nil {
			return nil, err
		}
		if fileMap == nil {
			log.WithField("path", opts.Path).Debug("config file not found, using defaults")
		}
		merged = loader.Merge(merged, fileMap)
	}

	if !opts.SkipEnv {
		env := opts.Env
		if env == nil {
			env = loader.NewEnvLoader(EnvPrefix)
		}
		envMap, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.Merge(merged, envMap)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"filters": len(cfg.Filters),
		"level":   cfg.Log.Level,
	}).Debug("configuration loaded")
	return cfg, nil
}

// toMap converts a typed configuration to the generic map form.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return m, nil
}

// fromMap decodes the merged map into a typed configuration.
func fromMap(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ValidationError{Path: "config", Message: "invalid structure", Err: err}
	}
	if cfg.Filters == nil {
		cfg.Filters = map[string]FilterDef{}
	}
	return cfg, nil
}

// Validate checks the log level and every filter definition against reg.
func (c *Config) Validate(reg *predicate.Registry) error {
	var errs []error
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{Path: "log.level", Message: fmt.Sprintf("invalid level %q", c.Log.Level)})
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, &ValidationError{Path: "log.format", Message: fmt.Sprintf("invalid format %q", c.Log.Format)})
	}

	for _, name := range c.FilterNames() {
		def := c.Filters[name]
		path := "filters." + name
		if len(def.Chain) == 0 && def.Lua == "" {
			errs = append(errs, &ValidationError{Path: path, Message: "filter defines neither chain nor lua"})
			continue
		}
		if err := reg.Validate(def.Chain); err != nil {
			errs = append(errs, &ValidationError{Path: path + ".chain", Message: "bad predicate", Err: err})
		}
	}
	return errors.Join(errs...)
}

// Filter returns the named filter definition.
func (c *Config) Filter(name string) (FilterDef, error) {
	def, ok := c.Filters[name]
	if !ok {
		return FilterDef{}, fmt.Errorf("%w: %s", ErrFilterNotFound, name)
	}
	return def, nil
}

// FilterNames returns the defined filter names in sorted order.
func (c *Config) FilterNames() []string {
	names := make([]string, 0, len(c.Filters))
	for name := range c.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
