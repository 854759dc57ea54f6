package dataset

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// Format selects the encoding of a dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything other than
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses the records in r without validating them.
//
// Unknown keys are rejected so that a misspelled "mother_id" does not
// silently drop a relation.
func Decode(r io.Reader, format Format) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read dataset")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "dataset is empty")
	}

	var records []Record
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&records)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&records)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s dataset", format)
	}
	return records, nil
}

// Build validates records and assembles them into a tree.
//
// People are added first, then parent edges in record order with the father
// before the mother. The finished tree is checked for cycles.
func Build(records []Record) (*family.Tree, error) {
	t := family.NewTree()

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "record %d", i+1)
		}
		if err := t.AddPerson(r.Person()); err != nil {
			if stderrors.Is(err, family.ErrDuplicatePerson) {
				return nil, errors.Wrap(errors.ErrCodeDuplicatePerson, err, "record %d", i+1)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d", i+1)
		}
	}

	for i, r := range records {
		if err := addParent(t, r.FatherID, r.ID, family.RoleFather); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "record %d", i+1)
		}
		if err := addParent(t, r.MotherID, r.ID, family.RoleMother); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "record %d", i+1)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCycle, err, "someone is recorded as their own ancestor")
	}
	return t, nil
}

func addParent(t *family.Tree, parentID, childID string, role family.Role) error {
	if parentID == "" {
		return nil
	}
	if _, ok := t.Person(parentID); !ok {
		return errors.New(errors.ErrCodeUnknownParent, "%s_id %q of %q is not in the dataset", role, parentID, childID)
	}
	if err := t.AddParentEdge(parentID, childID, role); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecord, err, "%s of %q", role, childID)
	}
	return nil
}

// Read decodes and builds a tree from r. Photo paths are kept as written;
// use [Import] or [family.Tree.SetBaseDir] to resolve them.
func Read(r io.Reader, format Format) (*family.Tree, error) {
	records, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(records)
}

// Import reads the dataset file at path. The format comes from the
// extension and photos resolve relative to the file's directory.
func Import(path string) (*family.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	t, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	t.SetBaseDir(filepath.Dir(path))
	return t, nil
}
