package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgtheme/intern"
	"github.com/benoitkugler/svgtheme/svgdraw"
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/theme"
	"github.com/benoitkugler/svgtheme/themecache"
)

// errFailed is returned once the failures have been printed
var errFailed = errors.New("some documents are invalid")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <theme>...",
		Short: "Parse theme documents",
		Long:  "Parse each theme document and print its rule counts, or the error stopping the parser.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) check(w io.Writer, paths []string) error {
	in := intern.New()
	failed := false
	for _, path := range paths {
		th, err := theme.Load(path, in, a.sink)
		if err != nil {
			fmt.Fprintf(w, "%s: %s\n", path, err)
			failed = true
			continue
		}
		fmt.Fprintf(w, "%s: %q, %d id rules, %d class rules\n", path, th.Name(), th.IDs(), th.Classes())
	}
	if failed {
		return errFailed
	}
	return nil
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <theme.json>...",
		Short: "Validate JSON themes against the theme schema",
		Long:  "Validate JSON theme documents against the theme schema, printing every violation instead of the first one.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lint(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) lint(w io.Writer, paths []string) error {
	failed := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		violations, err := theme.Lint(data)
		if err != nil {
			fmt.Fprintf(w, "%s: %s\n", path, err)
			failed = true
			continue
		}
		for _, v := range violations {
			fmt.Fprintf(w, "%s: %s\n", path, v)
		}
		if len(violations) != 0 {
			failed = true
			continue
		}
		fmt.Fprintf(w, "%s: ok\n", path)
	}
	if failed {
		return errFailed
	}
	return nil
}

type shapesOptions struct {
	prefix string
	match  string
}

func newShapesCmd(a *app) *cobra.Command {
	var opts shapesOptions
	cmd := &cobra.Command{
		Use:   "shapes <svg>",
		Short: "List the shapes of an SVG image",
		Long:  "List the shapes of an SVG image, with the element id and class a theme rule can target.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.shapes(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "only list the shapes whose element id starts with prefix")
	cmd.Flags().StringVar(&opts.match, "match", "", "only list the shapes whose element id matches the regular expression")
	return cmd
}

func (a *app) shapes(w io.Writer, svgPath string, opts shapesOptions) error {
	var re *regexp.Regexp
	if opts.match != "" {
		var err error
		if re, err = regexp.Compile(opts.match); err != nil {
			return fmt.Errorf("invalid --match: %w", err)
		}
	}
	cache := a.newCache()
	icon := cache.Image(svgPath)
	if icon == nil {
		return fmt.Errorf("can't load image %s", svgPath)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLASS\tBOUNDS\tPATHS\tPOINTS")
	list := func(shape *svgicon.Shape) { writeShape(tw, cache, shape) }
	if re != nil {
		svgdraw.ForEachMatched(cache, icon, re, func(_ []string, shape *svgicon.Shape) { list(shape) })
	} else {
		svgdraw.ForEachPrefixed(cache, icon, opts.prefix, func(_ int, shape *svgicon.Shape) { list(shape) })
	}
	return tw.Flush()
}

func writeShape(w io.Writer, cache *themecache.Cache, shape *svgicon.Shape) {
	class, _ := cache.Text(cache.ShapeInfo(shape).Class)
	points := 0
	for _, p := range shape.Paths {
		points += len(p.Points)
	}
	bounds := "-"
	if box := svgdraw.Bounds(shape); !box.IsEmpty() {
		bounds = fmt.Sprintf("%g,%g %gx%g", box.Min.X, box.Min.Y, box.W(), box.H())
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", cache.ShapeID(shape), class, bounds, len(shape.Paths), points)
}
