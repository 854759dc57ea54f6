package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatDOT = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatJPG, FormatDOT}

var gvFormats = map[string]graphviz.Format{
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
}

// Render lays out dot with Graphviz and encodes it in format. The "dot"
// format returns the source unchanged.
func Render(ctx context.Context, dot string, format string) ([]byte, error) {
	return RenderWithPhotos(ctx, dot, format, nil)
}

// RenderWithPhotos is [Render] with photos drawn into the nodes. photos maps
// node IDs to image files, usually from [PhotoFiles]. SVG output embeds each
// photo as a data URI; PNG and JPG output composites it onto the raster.
func RenderWithPhotos(ctx context.Context, dot string, format string, photos map[string]string) ([]byte, error) {
	if format == FormatDOT {
		return []byte(dot), nil
	}
	gvFormat, ok := gvFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	// The in-process renderer has no access to the host filesystem.
	g, err := graphviz.ParseBytes(imageAttrRe.ReplaceAll([]byte(dot), nil))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	render := func(f graphviz.Format) ([]byte, error) {
		var buf bytes.Buffer
		if err := gv.Render(ctx, g, f, &buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		return buf.Bytes(), nil
	}

	if format == FormatSVG {
		svg, err := render(graphviz.SVG)
		if err != nil {
			return nil, err
		}
		if len(photos) > 0 {
			svg = embedPhotos(svg, photos)
		}
		return normalizeViewBox(svg), nil
	}

	out, err := render(gvFormat)
	if err != nil || len(photos) == 0 {
		return out, err
	}
	svg, err := render(graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return compositePhotos(out, svg, photos, format)
}

var (
	imageAttrRe = regexp.MustCompile(`,\s*image="(?:[^"\\]|\\.)*"`)
	svgTagRe    = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe   = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// zero-origin viewBox so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
