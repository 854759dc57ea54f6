package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

// Render draws t once as DOT and encodes it in every requested format.
func Render(ctx context.Context, t *family.Tree, ro nodelink.Options, formats []string) (map[string][]byte, error) {
	dot := nodelink.ToDOT(t, ro)
	var photos map[string]string
	if ro.Photos {
		photos = nodelink.PhotoFiles(t)
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := nodelink.RenderWithPhotos(ctx, dot, format, photos)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
