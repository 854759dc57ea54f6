package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// Records flattens t back into dataset records, one per person in insertion
// order.
func Records(t *family.Tree) []Record {
	people := t.People()
	records := make([]Record, len(people))
	for i, p := range people {
		records[i] = recordOf(t, p)
	}
	return records
}

// Write encodes t to w. The output can be re-read with [Read].
func Write(t *family.Tree, w io.Writer, format Format) error {
	records := Records(t)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	return nil
}

// Export writes t to the file at path in the format implied by its
// extension.
func Export(t *family.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(t, f, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Hash returns a content hash of t. Two trees with the same people,
// relations and photo base directory hash the same.
func Hash(t *family.Tree) string {
	data, _ := json.Marshal(struct {
		BaseDir string   `json:"base_dir,omitempty"`
		Records []Record `json:"records"`
	}{t.BaseDir(), Records(t)})
	return cache.Hash(data)
}
