package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/fsview/internal/config"
	"github.com/dshills/fsview/internal/logging"
	"github.com/dshills/fsview/internal/predicate"
	"github.com/dshills/fsview/internal/script"
	"github.com/dshills/fsview/internal/view"
)

// options holds the global flags.
type options struct {
	configPath    string
	logLevel      string
	filters       []string
	named         []string
	lua           string
	includeSource bool
}

// app carries the state shared by all subcommands.
type app struct {
	opts  options
	stdin io.Reader

	cfg     *config.Config
	log     *logrus.Logger
	reg     *predicate.Registry
	eng     *script.Engine
	builder *config.Builder
	inline  *script.Script
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	a := &app{stdin: stdin}

	root := &cobra.Command{
		Use:   "fsview",
		Short: "Print filtered views of text",
		Long: `fsview filters text through character predicates without copying it,
then prints, indexes, slices, splits or compares the filtered view.

Predicates are given as specs (alpha, digit, not:space, oneof:aeiou,
range:a-f), as named filters from the configuration file, or as an
inline Lua body that sees the character c and its raw offset off.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.prepare,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "Path to configuration file (TOML or YAML)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringArrayVarP(&a.opts.filters, "filter", "f", nil, "Predicate spec to AND into the filter (repeatable)")
	flags.StringArrayVarP(&a.opts.named, "named", "n", nil, "Named filter from the configuration (repeatable)")
	flags.StringVar(&a.opts.lua, "lua", "", "Inline Lua body of accept(c, off)")
	flags.BoolVar(&a.opts.includeSource, "include-source", false, "Keep earlier filters when composing --filter specs onto named filters")

	root.AddCommand(
		newShowCmd(a),
		newAtCmd(a),
		newSubstrCmd(a),
		newSplitCmd(a),
		newCompareCmd(a),
		newWatchCmd(a),
		newFiltersCmd(a),
	)
	return root
}

// prepare loads configuration and builds the shared components.
func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	if a.opts.logLevel != "" && !logging.ValidLevel(a.opts.logLevel) {
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", a.opts.logLevel)
	}

	bootLevel := a.opts.logLevel
	if bootLevel == "" {
		bootLevel = "warn"
	}
	boot := logging.New(logging.Config{Level: bootLevel, Output: cmd.ErrOrStderr()})
	cfg, err := config.Load(config.Options{Path: a.opts.configPath, Logger: boot})
	if err != nil {
		return err
	}
	if a.opts.logLevel != "" {
		cfg.Log.Level = a.opts.logLevel
	}

	a.reg = predicate.NewWithDefaults()
	if err := cfg.Validate(a.reg); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Output: cmd.ErrOrStderr(),
		JSON:   cfg.Log.Format == "json",
	})
	a.eng = script.NewEngine(script.WithContext(cmd.Context()), script.WithLogger(a.log))
	a.builder = config.NewBuilder(a.reg, a.eng)
	return nil
}

func (a *app) close() {
	if a.eng != nil {
		a.eng.Close()
	}
}

// isStdin reports whether an input argument names stdin.
func isStdin(path string) bool {
	return path == "" || path == "-"
}

// readInput reads the named file, or stdin for "" and "-".
func (a *app) readInput(path string) (string, error) {
	if isStdin(path) {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// filtered builds the view selected by the global flags over data.
// Named filters apply first, then --filter specs, then --lua.
func (a *app) filtered(data string) (*view.View, error) {
	v := view.New(data, nil)

	for _, name := range a.opts.named {
		def, err := a.cfg.Filter(name)
		if err != nil {
			return nil, err
		}
		if v, err = a.builder.Apply(v, name, def); err != nil {
			return nil, err
		}
	}

	if len(a.opts.filters) > 0 {
		preds, err := a.reg.Chain(a.opts.filters)
		if err != nil {
			return nil, err
		}
		var opts []view.ComposeOption
		if a.opts.includeSource {
			opts = append(opts, view.IncludeSource())
		}
		v = view.Compose(v, preds, opts...)
	}

	if a.opts.lua != "" {
		if a.inline == nil {
			s, err := a.eng.CompileExpr("inline", a.opts.lua)
			if err != nil {
				return nil, err
			}
			a.inline = s
		}
		v = view.Compose(v, []view.Predicate{a.inline.Predicate()}, view.IncludeSource())
	}

	a.log.WithFields(logrus.Fields{
		"raw":  len(data),
		"size": v.Size(),
	}).Debug("view built")
	return v, nil
}

// scriptErr reports the first Lua failure seen while filtering.
func (a *app) scriptErr() error {
	if err := a.builder.ScriptErr(); err != nil {
		return err
	}
	if a.inline != nil {
		return a.inline.Err()
	}
	return nil
}

// inputArg returns the optional input path at args[i].
func inputArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
