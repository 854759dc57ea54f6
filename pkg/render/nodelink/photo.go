package nodelink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"math"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"
)

// Photo placement inside a node, in points.
const (
	photoPad      = 6.0
	labelLineH    = 22.0
	labelMarginB  = 8.0
	minPhotoSide  = 10.0
	maxEmbedPixel = 256
)

var (
	nodeGroupRe  = regexp.MustCompile(`(?s)<g id="[^"]*" class="node">\s*<title>([^<]*)</title>(.*?)</g>`)
	shapeRe      = regexp.MustCompile(`<(?:path|polygon)\b[^>]*?\s(?:d|points)="([^"]*)"`)
	pointRe      = regexp.MustCompile(`(-?[0-9]*\.?[0-9]+),(-?[0-9]*\.?[0-9]+)`)
	textRe       = regexp.MustCompile(`<text\b`)
	graphXformRe = regexp.MustCompile(`class="graph" transform="([^"]*)"`)
	scaleRe      = regexp.MustCompile(`scale\((-?[0-9.]+)(?:[ ,]+(-?[0-9.]+))?\)`)
	translateRe  = regexp.MustCompile(`translate\((-?[0-9.]+)[ ,]+(-?[0-9.]+)\)`)
)

// nodeBox is a node's outline in Graphviz SVG user space.
type nodeBox struct {
	id             string
	x0, y0, x1, y1 float64
	lines          int
}

// photoRect returns the area above the label, or ok=false when the node
// is too small to hold a photo.
func (b nodeBox) photoRect() (x, y, w, h float64, ok bool) {
	x, y = b.x0+photoPad, b.y0+photoPad
	w = b.x1 - b.x0 - 2*photoPad
	h = b.y1 - b.y0 - 2*photoPad - float64(b.lines)*labelLineH - labelMarginB
	return x, y, w, h, w >= minPhotoSide && h >= minPhotoSide
}

// parseNodeBox reads the bounding box of the first shape in a node group.
func parseNodeBox(id string, body []byte) (nodeBox, bool) {
	m := shapeRe.FindSubmatch(body)
	if m == nil {
		return nodeBox{}, false
	}
	b := nodeBox{id: id, x0: math.Inf(1), y0: math.Inf(1), x1: math.Inf(-1), y1: math.Inf(-1)}
	for _, pt := range pointRe.FindAllSubmatch(m[1], -1) {
		x, errX := strconv.ParseFloat(string(pt[1]), 64)
		y, errY := strconv.ParseFloat(string(pt[2]), 64)
		if errX != nil || errY != nil {
			continue
		}
		b.x0, b.x1 = math.Min(b.x0, x), math.Max(b.x1, x)
		b.y0, b.y1 = math.Min(b.y0, y), math.Max(b.y1, y)
	}
	if math.IsInf(b.x0, 0) {
		return nodeBox{}, false
	}
	b.lines = len(textRe.FindAllIndex(body, -1))
	return b, true
}

// nodeBoxes lists the outline of every node in a Graphviz SVG.
func nodeBoxes(svg []byte) []nodeBox {
	var boxes []nodeBox
	for _, m := range nodeGroupRe.FindAllSubmatch(svg, -1) {
		if b, ok := parseNodeBox(html.UnescapeString(string(m[1])), m[2]); ok {
			boxes = append(boxes, b)
		}
	}
	return boxes
}

// graphTransform returns the scale and translation Graphviz applies to
// the top-level graph group.
func graphTransform(svg []byte) (sx, sy, tx, ty float64) {
	sx, sy = 1, 1
	m := graphXformRe.FindSubmatch(svg)
	if m == nil {
		return sx, sy, 0, 0
	}
	if s := scaleRe.FindSubmatch(m[1]); s != nil {
		sx, _ = strconv.ParseFloat(string(s[1]), 64)
		sy = sx
		if len(s[2]) > 0 {
			sy, _ = strconv.ParseFloat(string(s[2]), 64)
		}
	}
	if t := translateRe.FindSubmatch(m[1]); t != nil {
		tx, _ = strconv.ParseFloat(string(t[1]), 64)
		ty, _ = strconv.ParseFloat(string(t[2]), 64)
	}
	return sx, sy, tx, ty
}

// embedPhotos adds an <image> with a PNG data URI to each node that has a
// photo. Photos that cannot be decoded are left out.
func embedPhotos(svg []byte, photos map[string]string) []byte {
	matches := nodeGroupRe.FindAllSubmatchIndex(svg, -1)
	var out bytes.Buffer
	last := 0
	for _, m := range matches {
		id := html.UnescapeString(string(svg[m[2]:m[3]]))
		path, ok := photos[id]
		if !ok {
			continue
		}
		body := svg[m[4]:m[5]]
		box, ok := parseNodeBox(id, body)
		if !ok {
			continue
		}
		x, y, w, h, ok := box.photoRect()
		if !ok {
			continue
		}
		uri, err := photoDataURI(path)
		if err != nil {
			continue
		}

		// Draw the photo after the outline so it sits above the fill.
		at := m[5]
		if loc := textRe.FindIndex(body); loc != nil {
			at = m[4] + loc[0]
		}
		out.Write(svg[last:at])
		fmt.Fprintf(&out, `<image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid meet" xlink:href="%s"/>`+"\n",
			x, y, w, h, uri)
		last = at
	}
	out.Write(svg[last:])
	return out.Bytes()
}

// compositePhotos draws photos onto a PNG or JPG produced from the same
// layout as svg.
func compositePhotos(raster, svg []byte, photos map[string]string, format string) ([]byte, error) {
	base, err := imaging.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	vb := viewBoxRe.FindSubmatch(svg)
	if vb == nil {
		return raster, nil
	}
	vbW, _ := strconv.ParseFloat(string(vb[3]), 64)
	if vbW == 0 {
		return raster, nil
	}
	px := float64(base.Bounds().Dx()) / vbW
	sx, sy, tx, ty := graphTransform(svg)

	dst := imaging.Clone(base)
	for _, b := range nodeBoxes(svg) {
		path, ok := photos[b.id]
		if !ok {
			continue
		}
		x, y, w, h, ok := b.photoRect()
		if !ok {
			continue
		}
		rect := image.Rect(
			int(math.Round(sx*(x+tx)*px)), int(math.Round(sy*(y+ty)*px)),
			int(math.Round(sx*(x+w+tx)*px)), int(math.Round(sy*(y+h+ty)*px)),
		)
		if rect.Empty() {
			continue
		}
		photo, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			continue
		}
		photo = fitInto(photo, rect.Dx(), rect.Dy())
		pb := photo.Bounds()
		at := image.Pt(rect.Min.X+(rect.Dx()-pb.Dx())/2, rect.Min.Y+(rect.Dy()-pb.Dy())/2)
		dst = imaging.Overlay(dst, photo, at, 1.0)
	}

	enc := imaging.PNG
	if format == FormatJPG {
		enc = imaging.JPEG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, enc, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// fitInto scales img up or down to the largest size inside w×h that keeps
// its aspect ratio.
func fitInto(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx()*h > b.Dy()*w {
		return imaging.Resize(img, w, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, h, imaging.Lanczos)
}

// photoDataURI downsizes the photo at path and returns it as a PNG data URI.
func photoDataURI(path string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	img = imaging.Fit(img, maxEmbedPixel, maxEmbedPixel, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
