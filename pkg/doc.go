// Package pkg holds the kintree libraries.
//
// # Overview
//
// kintree stores a family as a directed acyclic graph of people joined by
// parent→child edges, answers ancestry questions about it and draws it as a
// node-link diagram. The packages build on each other:
//
//  1. [dag] - insertion-ordered graph with ancestor and pre-order walks
//  2. [family] - people, father/mother roles and the display-name [family.Directory]
//  3. [dataset] - JSON/YAML records, validation, import and export
//  4. [kin] - common ancestors, closest common ancestors, descendants
//  5. [render/nodelink] - Graphviz DOT and SVG/PNG/JPG output
//  6. [pipeline] - load → query → render, with artifact caching
//
// Supporting packages are [errors] (coded errors), [cache] (file and null
// caches), [observability] (query, render and cache hooks) and [buildinfo].
//
// # Data Flow
//
//	family.json / family.yaml
//	         ↓
//	    [dataset] (decode, validate, build)
//	         ↓
//	    [family] Tree over a [dag] DAG
//	         ↓
//	    [kin] Engine (queries)
//	         ↓
//	    [render/nodelink] (DOT → Graphviz)
//	         ↓
//	    SVG/PNG/JPG/DOT
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/kintree/pkg/dataset"
//	    "github.com/matzehuels/kintree/pkg/kin"
//	)
//
//	t, err := dataset.Import("family.json")
//	if err != nil {
//	    return err
//	}
//	eng := kin.New(t, nil)
//	for _, p := range eng.ClosestCommonAncestorsByName("Bart", "Ling") {
//	    fmt.Println(p.FullName())
//	}
//
// Rendering with caching goes through [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	result, err := runner.Execute(ctx, "family.json", pipeline.Options{
//	    Formats:   []string{"svg"},
//	    Highlight: pipeline.Highlight{Mode: pipeline.HighlightDescendants, Names: []string{"Abraham"}},
//	})
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/dag
// [family]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/family
// [family.Directory]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/family#Directory
// [dataset]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/dataset
// [kin]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/kin
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/pipeline#Runner
// [errors]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/buildinfo
package pkg
