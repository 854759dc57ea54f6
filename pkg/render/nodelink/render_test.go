package nodelink

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/kintree/pkg/family"
)

func TestRenderDOTPassthrough(t *testing.T) {
	src := "digraph G { a -> b; }"
	got, err := Render(context.Background(), src, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != src {
		t.Errorf("Render(dot) = %q", got)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	if _, err := Render(context.Background(), "digraph G {}", "pdf"); err == nil {
		t.Error("expected error for pdf")
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(testTree(t), Options{})
	svg, err := Render(context.Background(), dot, FormatSVG)
	if err != nil {
		t.Fatalf("Render(svg): %v", err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("SVG viewBox not normalized")
	}
	if !bytes.Contains(svg, []byte("Homer")) {
		t.Error("SVG missing node label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

// photoTree is testTree with a solid red 40×40 portrait for Homer.
func photoTree(t *testing.T) (*family.Tree, map[string]string) {
	t.Helper()
	tr := testTree(t)
	dir := t.TempDir()
	tr.SetBaseDir(dir)
	red := imaging.New(40, 40, color.NRGBA{R: 255, A: 255})
	if err := imaging.Save(red, filepath.Join(dir, "homer.png")); err != nil {
		t.Fatal(err)
	}
	photos := PhotoFiles(tr)
	if len(photos) != 1 {
		t.Fatalf("PhotoFiles() = %v, want Homer only", photos)
	}
	return tr, photos
}

func TestRenderSVGWithPhoto(t *testing.T) {
	tr, photos := photoTree(t)
	svg, err := RenderWithPhotos(context.Background(), ToDOT(tr, Options{Photos: true}), FormatSVG, photos)
	if err != nil {
		t.Fatalf("RenderWithPhotos(svg): %v", err)
	}
	if n := bytes.Count(svg, []byte("<image")); n != 1 {
		t.Errorf("SVG has %d <image> elements, want 1", n)
	}
	if !bytes.Contains(svg, []byte(`xlink:href="data:image/png;base64,`)) {
		t.Error("photo should be embedded as a PNG data URI")
	}
	if bytes.Contains(svg, []byte("homer.png")) {
		t.Error("SVG should not reference the photo file path")
	}
}

func TestRenderSVGWithoutPhotos(t *testing.T) {
	tr, _ := photoTree(t)
	svg, err := RenderWithPhotos(context.Background(), ToDOT(tr, Options{}), FormatSVG, nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(svg, []byte("<image")) {
		t.Error("no <image> expected with photos off")
	}
}

func TestRenderPNGWithPhoto(t *testing.T) {
	tr, photos := photoTree(t)
	dot := ToDOT(tr, Options{Photos: true})

	redPixels := func(data []byte) int {
		t.Helper()
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode PNG: %v", err)
		}
		n := 0
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, a := img.At(x, y).RGBA()
				if a > 0xf000 && r > 0xe000 && g < 0x3000 && bl < 0x3000 {
					n++
				}
			}
		}
		return n
	}

	plain, err := RenderWithPhotos(context.Background(), dot, FormatPNG, nil)
	if err != nil {
		t.Fatal(err)
	}
	withPhoto, err := RenderWithPhotos(context.Background(), dot, FormatPNG, photos)
	if err != nil {
		t.Fatal(err)
	}
	if n := redPixels(plain); n != 0 {
		t.Errorf("plain PNG has %d red pixels, want 0", n)
	}
	if n := redPixels(withPhoto); n < 400 {
		t.Errorf("PNG with photo has %d red pixels, want the portrait drawn", n)
	}
}

func TestNodeBoxes(t *testing.T) {
	svg := []byte(`<svg width="134pt" height="116pt" viewBox="0.00 0.00 134.00 116.00">
<g id="graph0" class="graph" transform="scale(1 1) rotate(0) translate(4 112)">
<g id="node1" class="node">
<title>H</title>
<path fill="white" stroke="#555555" d="M110,-108C110,-108 16,-108 16,-108 10,-108 4,-102 4,-96 4,-96 4,-12 4,-12 4,-6 10,0 16,0 16,0 110,0 110,0 116,0 122,-6 122,-12 122,-12 122,-96 122,-96 122,-102 116,-108 110,-108"/>
<text text-anchor="middle" x="63" y="-13.8">Homer</text>
</g>
</g>
</svg>`)

	boxes := nodeBoxes(svg)
	if len(boxes) != 1 {
		t.Fatalf("nodeBoxes() = %v, want one box", boxes)
	}
	b := boxes[0]
	if b.id != "H" || b.x0 != 4 || b.y0 != -108 || b.x1 != 122 || b.y1 != 0 || b.lines != 1 {
		t.Errorf("nodeBoxes()[0] = %+v", b)
	}
	x, y, w, h, ok := b.photoRect()
	if !ok || x != 10 || y != -102 || w != 106 || h != 66 {
		t.Errorf("photoRect() = %v %v %v %v %v", x, y, w, h, ok)
	}

	sx, sy, tx, ty := graphTransform(svg)
	if sx != 1 || sy != 1 || tx != 4 || ty != 112 {
		t.Errorf("graphTransform() = %v %v %v %v", sx, sy, tx, ty)
	}

	// A node too short for a photo gets none.
	small := nodeBox{x0: 0, y0: -30, x1: 80, y1: 0, lines: 1}
	if _, _, _, _, ok := small.photoRect(); ok {
		t.Error("photoRect() should reject a label-only node")
	}
}

func TestFitInto(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	if got := fitInto(src, 100, 100).Bounds(); got.Dx() != 100 || got.Dy() != 50 {
		t.Errorf("fitInto(40x20, 100x100) = %v", got)
	}
	if got := fitInto(src, 10, 100).Bounds(); got.Dx() != 10 || got.Dy() != 5 {
		t.Errorf("fitInto(40x20, 10x100) = %v", got)
	}
}

func TestRenderStripsImageAttribute(t *testing.T) {
	dot := `digraph G { "H" [label="Homer", image="/nowhere/homer.png", imagescale=true]; }`
	svg, err := Render(context.Background(), dot, FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(svg, []byte("nowhere")) {
		t.Error("image attribute should not reach the renderer")
	}
}
