package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/fsview/internal/view"
	"github.com/dshills/fsview/internal/watch"
)

func newShowCmd(a *app) *cobra.Command {
	var reverse, size bool

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print the filtered view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(inputArg(args, 0))
			if err != nil {
				return err
			}
			v, err := a.filtered(data)
			if err != nil {
				return err
			}
			if err := a.show(cmd.OutOrStdout(), v, reverse, size); err != nil {
				return err
			}
			return a.scriptErr()
		},
	}
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Print the view in reverse order")
	cmd.Flags().BoolVarP(&size, "size", "s", false, "Print the number of characters instead of the text")
	return cmd
}

// show renders v to w.
func (a *app) show(w io.Writer, v *view.View, reverse, size bool) error {
	switch {
	case size:
		_, err := fmt.Fprintln(w, v.Size())
		return err
	case reverse:
		out := make([]byte, 0, v.Size()+1)
		for c := range v.Backward() {
			out = append(out, c)
		}
		_, err := w.Write(append(out, '\n'))
		return err
	}
	if _, err := v.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func newAtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "at <index> [file]",
		Short: "Print the character at a logical index",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			data, err := a.readInput(inputArg(args, 1))
			if err != nil {
				return err
			}
			v, err := a.filtered(data)
			if err != nil {
				return err
			}
			c, err := v.At(i)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write([]byte{c, '\n'}); err != nil {
				return err
			}
			return a.scriptErr()
		},
	}
}

func newSubstrCmd(a *app) *cobra.Command {
	var pos, count int

	cmd := &cobra.Command{
		Use:   "substr [file]",
		Short: "Print a logical range of the filtered view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(inputArg(args, 0))
			if err != nil {
				return err
			}
			v, err := a.filtered(data)
			if err != nil {
				return err
			}

			var sub *view.View
			if cmd.Flags().Changed("count") {
				sub, err = view.SubstrN(v, pos, count)
			} else {
				sub, err = view.Substr(v, pos)
			}
			if err != nil {
				return err
			}
			if err := a.show(cmd.OutOrStdout(), sub, false, false); err != nil {
				return err
			}
			return a.scriptErr()
		},
	}
	cmd.Flags().IntVarP(&pos, "pos", "p", 0, "Logical start position")
	cmd.Flags().IntVar(&count, "count", 0, "Number of characters (default: to the end)")
	return cmd
}

func newSplitCmd(a *app) *cobra.Command {
	var delim string
	var quote bool

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split the filtered view on a delimiter and print one fragment per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("delim") {
				delim = a.cfg.Split.Delimiter
			}
			data, err := a.readInput(inputArg(args, 0))
			if err != nil {
				return err
			}
			v, err := a.filtered(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for part := range view.SplitSeq(v, view.New(delim, nil)) {
				if quote {
					_, err = fmt.Fprintf(out, "%q\n", part.String())
				} else {
					_, err = fmt.Fprintln(out, part)
				}
				if err != nil {
					return err
				}
			}
			return a.scriptErr()
		},
	}
	cmd.Flags().StringVarP(&delim, "delim", "d", ",", "Delimiter (default from configuration)")
	cmd.Flags().BoolVarP(&quote, "quote", "q", false, "Quote fragments so empty ones are visible")
	return cmd
}

var errStdinTwice = errors.New("compare: stdin can only be one of the inputs")

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <file> <other>",
		Short: "Compare two files after filtering; prints -1, 0 or 1",
		Long: `Compare two inputs after filtering and print -1, 0 or 1.
Either input may be "-" for stdin, but not both.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if isStdin(args[0]) && isStdin(args[1]) {
				return errStdinTwice
			}
			var views [2]*view.View
			for i, path := range args {
				data, err := a.readInput(path)
				if err != nil {
					return err
				}
				if views[i], err = a.filtered(data); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), view.Compare(views[0], views[1])); err != nil {
				return err
			}
			return a.scriptErr()
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var delay time.Duration
	var reverse bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print the filtered view of a file every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := watch.New(args[0], watch.WithDelay(delay), watch.WithLogger(a.log))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			err = w.Run(cmd.Context(), func() error {
				data, err := a.readInput(w.Path())
				if err != nil {
					return err
				}
				v, err := a.filtered(data)
				if err != nil {
					return err
				}
				if err := a.show(out, v, reverse, false); err != nil {
					return err
				}
				return a.scriptErr()
			})
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "Debounce interval")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Print the view in reverse order")
	return cmd
}

func newFiltersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List built-in predicates and configured filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Predicates:")
			for _, name := range a.reg.Names() {
				fmt.Fprintf(out, "  %-8s %s\n", name, a.reg.Help(name))
			}
			fmt.Fprintln(out, "  not:<spec> oneof:<chars> noneof:<chars> range:<lo>-<hi>")

			names := a.cfg.FilterNames()
			if len(names) == 0 {
				return nil
			}
			fmt.Fprintln(out, "Filters:")
			for _, name := range names {
				def := a.cfg.Filters[name]
				kind := "chain"
				if def.Lua != "" {
					kind = "lua"
				}
				fmt.Fprintf(out, "  %-8s %s %v\n", name, kind, def.Chain)
			}
			return nil
		},
	}
}
