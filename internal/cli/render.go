package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // svg, png, jpg, dot
	detailed bool     // surname, ID and birth date under each name
	arrows   bool     // arrowheads on parent → child edges
	photos   bool     // embed portrait photos
	noCache  bool     // skip the artifact cache entirely
	refresh  bool     // re-render even when cached

	ancestors   string // "A,B": highlight common ancestors
	closest     bool   // with ancestors: only the closest ones
	descendants string // "A": highlight descendants
}

// renderCommand creates the render command. Flags left unset fall back to
// the config file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the family tree as a diagram",
		Long: `Draw the family tree as a node-link diagram.

Father links are drawn blue and mother links rose. A query result can be
highlighted: the people it returns are filled and the people it was asked
about are outlined. Output goes next to the dataset unless -o or the
config's output_dir says otherwise.`,
		Example: `  kintree render
  kintree render -f svg,png --photos
  kintree render --highlight-ancestors Bart,Ling --closest
  kintree render --highlight-descendants Abraham -o out/abe.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			opts.formats = parseList(formatsStr)
			if len(opts.formats) == 0 {
				opts.formats = c.Config.Formats
			}
			if !flags.Changed("detailed") {
				opts.detailed = c.Config.Detailed
			}
			if !flags.Changed("arrows") {
				opts.arrows = c.Config.Arrows
			}
			if !flags.Changed("photos") {
				opts.photos = c.Config.Photos
			}
			return c.runRender(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(nodelink.Formats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show surname, ID and birth date")
	cmd.Flags().BoolVar(&opts.arrows, "arrows", false, "draw arrowheads from parent to child")
	cmd.Flags().BoolVar(&opts.photos, "photos", false, "embed portrait photos")
	cmd.Flags().StringVar(&opts.ancestors, "highlight-ancestors", "", "highlight the common ancestors of two people (NAME_A,NAME_B)")
	cmd.Flags().BoolVar(&opts.closest, "closest", false, "with --highlight-ancestors, only the closest ones")
	cmd.Flags().StringVar(&opts.descendants, "highlight-descendants", "", "highlight the descendants of a person")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the diagram cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.MarkFlagsMutuallyExclusive("highlight-ancestors", "highlight-descendants")

	return cmd
}

// highlight converts the highlight flags.
func (o *renderOpts) highlight() (pipeline.Highlight, error) {
	switch {
	case o.ancestors != "":
		mode := pipeline.HighlightAncestors
		if o.closest {
			mode = pipeline.HighlightClosest
		}
		return pipeline.Highlight{Mode: mode, Names: parseList(o.ancestors)}, nil
	case o.closest:
		return pipeline.Highlight{}, fmt.Errorf("--closest needs --highlight-ancestors")
	case o.descendants != "":
		return pipeline.Highlight{Mode: pipeline.HighlightDescendants, Names: []string{strings.TrimSpace(o.descendants)}}, nil
	}
	return pipeline.Highlight{}, nil
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	hl, err := opts.highlight()
	if err != nil {
		return err
	}
	popts := pipeline.Options{
		Formats:   opts.formats,
		Detailed:  opts.detailed,
		Arrows:    opts.arrows,
		Photos:    opts.photos,
		Highlight: hl,
		Refresh:   opts.refresh,
		Logger:    logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	input := c.datasetPath()
	result, err := withSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+filepath.Base(input), func(ctx context.Context) (*pipeline.Result, error) {
		return runner.Execute(ctx, input, popts)
	})
	if err != nil {
		return err
	}

	if hl.Mode != pipeline.HighlightNone && len(result.Focus) == 0 {
		printWarning(cmd.ErrOrStderr(), "highlight skipped: %s not found", strings.Join(hl.Names, ", "))
	}

	base := c.basePath(opts.output, input)
	paths := outputPaths(base, opts.output, popts.Formats)
	out := cmd.OutOrStdout()
	for _, format := range popts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote diagram", "path", paths[format], "bytes", len(result.Artifacts[format]))
	}

	printSuccess(out, "Rendered %s", filepath.Base(input))
	for _, format := range popts.Formats {
		printFile(out, paths[format])
	}
	printStats(out, result.Stats.People, result.Stats.Relations, result.CacheInfo.RenderHit)
	return nil
}

// basePath derives the output path without extension. An explicit output
// wins (with a known format extension stripped), then output_dir joined
// with the dataset's name, then the dataset's own location.
func (c *CLI) basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if slices.Contains(nodelink.Formats, strings.TrimPrefix(ext, ".")) {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	if c.Config.OutputDir != "" {
		return filepath.Join(c.Config.OutputDir, filepath.Base(stem))
	}
	return stem
}

// outputPaths maps each format to its file. A single format written to an
// explicit -o path keeps that path exactly.
func outputPaths(base, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// withSpinner runs fn, showing a spinner on w when w is a terminal.
func withSpinner[T any](ctx context.Context, w io.Writer, msg string, fn func(context.Context) (T, error)) (T, error) {
	if !isTerminal(w) {
		return fn(ctx)
	}
	return spinWhile(ctx, newSpinnerWithContext(ctx, w, msg), fn)
}

// spinWhile runs fn under s. A failure ends the spinner with an error line
// unless the context was cancelled.
func spinWhile[T any](ctx context.Context, s *Spinner, fn func(context.Context) (T, error)) (T, error) {
	s.Start()
	v, err := fn(ctx)
	if err != nil && !s.Cancelled() {
		s.StopWithError(s.message + " failed")
	} else {
		s.Stop()
	}
	return v, err
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
