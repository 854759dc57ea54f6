package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/dataset"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/kin"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one instance can serve several
// commands.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer, a nil cache
// disables caching and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load imports the dataset at path.
func (r *Runner) Load(ctx context.Context, path string) (*family.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	t, err := dataset.Import(path)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded dataset",
		"path", path,
		"people", t.Len(),
		"relations", t.EdgeCount(),
		"duration", time.Since(start))
	return t, nil
}

// Execute runs load → highlight → render.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	t, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Tree:        t,
		DatasetHash: dataset.Hash(t),
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.People = t.Len()
	result.Stats.Relations = t.EdgeCount()

	eng := kin.New(t, nil)
	result.Highlighted, result.Focus = r.highlight(eng, opts.Highlight)

	ro := opts.RenderOptions(personIDs(result.Highlighted), personIDs(result.Focus))
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, t, result.DatasetHash, ro, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered family tree",
		"people", result.Stats.People,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// highlight resolves the highlight names and runs the query. Unknown names
// give an empty highlight and a warning rather than an error.
func (r *Runner) highlight(eng *kin.Engine, h Highlight) (hl, focus []family.Person) {
	if h.Mode == HighlightNone {
		return nil, nil
	}
	for _, name := range h.Names {
		p, ok := eng.ResolveName(name)
		if !ok {
			r.Logger.Warn("unknown person, highlight skipped", "name", name)
			return nil, nil
		}
		focus = append(focus, p)
	}

	switch h.Mode {
	case HighlightAncestors:
		hl = eng.CommonAncestors(focus[0].ID, focus[1].ID)
	case HighlightClosest:
		hl = eng.ClosestCommonAncestors(focus[0].ID, focus[1].ID)
	case HighlightDescendants:
		// The subject is outlined, not filled.
		hl = eng.Descendants(focus[0].ID)[1:]
	}
	r.Logger.Debug("computed highlight", "mode", h.Mode, "names", h.Names, "people", len(hl))
	return hl, focus
}

// RenderWithCacheInfo renders every format, serving all of them from the
// cache when possible. The bool reports a full cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, t *family.Tree, datasetHash string, ro nodelink.Options, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	stamp := PhotoStamp(t, ro)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(datasetHash, ArtifactKeyOpts(format, ro, stamp))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, key)
				break
			}
			hooks.OnCacheHit(ctx, key)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	renderHooks := observability.Render()
	renderHooks.OnRenderStart(ctx, opts.Formats, t.Len())
	start := time.Now()
	artifacts, err := Render(ctx, t, ro, opts.Formats)
	renderHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(datasetHash, ArtifactKeyOpts(format, ro, stamp))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, key, len(data))
	}
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func personIDs(people []family.Person) []string {
	if len(people) == 0 {
		return nil
	}
	ids := make([]string, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}
	return ids
}
