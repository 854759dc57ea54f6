// Package pipeline runs kintree's load → highlight → render pipeline.
//
// The CLI commands all start the same way: read a dataset, maybe run a
// query, maybe draw the result. Keeping that sequence here gives the
// commands one place for caching and timing.
//
// # Stages
//
//  1. Load: import the dataset file into a [family.Tree]
//  2. Highlight: optionally run a query whose result is emphasised in the
//     diagram (common ancestors of two people, or the descendants of one)
//  3. Render: produce DOT, SVG, PNG or JPG through Graphviz
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, "family.json", pipeline.Options{
//	    Formats:   []string{"svg"},
//	    Highlight: pipeline.Highlight{Mode: pipeline.HighlightAncestors, Names: []string{"Bart", "Ling"}},
//	})
//	svg := result.Artifacts["svg"]
//
// Rendered artifacts are cached by dataset hash and options, so redrawing
// an unchanged family is instant.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

// =============================================================================
// Defaults
// =============================================================================

// DefaultDataset is used when neither a flag nor the config names a file.
const DefaultDataset = "family.json"

// DefaultFormats is the output when none is requested.
var DefaultFormats = []string{nodelink.FormatSVG}

// =============================================================================
// Options
// =============================================================================

// HighlightMode selects which query feeds the diagram highlight.
type HighlightMode string

const (
	HighlightNone        HighlightMode = ""
	HighlightAncestors   HighlightMode = "ancestors"
	HighlightClosest     HighlightMode = "closest"
	HighlightDescendants HighlightMode = "descendants"
)

// Highlight names the people a query runs on.
type Highlight struct {
	Mode  HighlightMode
	Names []string
}

// Options configures a pipeline run.
type Options struct {
	Formats   []string
	Detailed  bool
	Arrows    bool
	Photos    bool
	Highlight Highlight

	// Refresh bypasses cached artifacts (they are still rewritten).
	Refresh bool

	Logger *log.Logger
}

// Result is the output of [Runner.Execute].
type Result struct {
	Tree        *family.Tree
	DatasetHash string

	// Highlighted is the query result drawn with the accent colour, in
	// query order. Empty when no highlight was requested or nobody matched.
	Highlighted []family.Person

	// Focus holds the resolved query subjects.
	Focus []family.Person

	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records sizes and timings.
type Stats struct {
	People     int
	Relations  int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo records whether artifacts came from the cache.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	if !slices.Contains(nodelink.Formats, format) {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(nodelink.Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the highlight arguments.
func (h Highlight) Validate() error {
	switch h.Mode {
	case HighlightNone:
		return nil
	case HighlightAncestors, HighlightClosest:
		if len(h.Names) != 2 {
			return fmt.Errorf("%s highlight needs exactly two names, got %d", h.Mode, len(h.Names))
		}
	case HighlightDescendants:
		if len(h.Names) != 1 {
			return fmt.Errorf("descendants highlight needs exactly one name, got %d", len(h.Names))
		}
	default:
		return fmt.Errorf("invalid highlight mode: %q", h.Mode)
	}
	return nil
}

// ValidateAndSetDefaults fills in defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.Highlight.Validate()
}

// RenderOptions converts to diagram options with the given highlight.
func (o *Options) RenderOptions(highlight, focus []string) nodelink.Options {
	return nodelink.Options{
		Detailed:  o.Detailed,
		Arrows:    o.Arrows,
		Photos:    o.Photos,
		Highlight: highlight,
		Focus:     focus,
	}
}

// ArtifactKeyOpts returns cache key options for one format. photoStamp
// comes from [PhotoStamp].
func ArtifactKeyOpts(format string, ro nodelink.Options, photoStamp string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Detailed:   ro.Detailed,
		Arrows:     ro.Arrows,
		Photos:     ro.Photos,
		Highlight:  ro.Highlight,
		Focus:      ro.Focus,
		PhotoStamp: photoStamp,
	}
}

// PhotoStamp hashes the size and modification time of each person's photo
// file, marking missing ones. It is empty when ro has photos off.
func PhotoStamp(t *family.Tree, ro nodelink.Options) string {
	if !ro.Photos {
		return ""
	}
	var b strings.Builder
	for _, p := range t.People() {
		path := t.PhotoPath(p)
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			fmt.Fprintf(&b, "%s:-\n", p.ID)
			continue
		}
		fmt.Fprintf(&b, "%s:%d:%d\n", p.ID, info.Size(), info.ModTime().UnixNano())
	}
	return cache.Hash([]byte(b.String()))
}
