package family

import (
	"maps"
	"slices"
)

// Directory is the display-name → ID lookup table used by the presentation
// layer. It is built once from a tree and passed explicitly to whoever needs
// it.
//
// Keys are display names. When several people share a name, each of them is
// keyed by "Name Surname" instead; full names are always accepted as an
// alternative key as long as they are unambiguous.
type Directory struct {
	byName map[string]string // display key -> ID
	byFull map[string]string // full name -> ID (unambiguous only)
	byID   map[string]string // ID -> display key
}

// NewDirectory builds the lookup table for t.
func NewDirectory(t *Tree) *Directory {
	people := t.People()

	nameCount := make(map[string]int, len(people))
	fullCount := make(map[string]int, len(people))
	for _, p := range people {
		nameCount[p.Name]++
		fullCount[p.FullName()]++
	}

	d := &Directory{
		byName: make(map[string]string, len(people)),
		byFull: make(map[string]string, len(people)),
		byID:   make(map[string]string, len(people)),
	}
	for _, p := range people {
		key := p.Name
		if nameCount[p.Name] > 1 {
			key = p.FullName()
		}
		if fullCount[p.FullName()] > 1 {
			// Indistinguishable by name; disambiguate with the identifier.
			key = p.FullName() + " (" + p.ID + ")"
		}
		if key == "" {
			key = p.ID
		}
		d.byName[key] = p.ID
		d.byID[p.ID] = key
		if fullCount[p.FullName()] == 1 {
			d.byFull[p.FullName()] = p.ID
		}
	}
	return d
}

// Lookup resolves a display name (or unambiguous full name) to an ID.
// Returns "", false when nothing matches.
func (d *Directory) Lookup(name string) (string, bool) {
	if id, ok := d.byName[name]; ok {
		return id, true
	}
	id, ok := d.byFull[name]
	return id, ok
}

// Name returns the display key for id.
func (d *Directory) Name(id string) (string, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Names returns all display keys, sorted.
func (d *Directory) Names() []string {
	return slices.Sorted(maps.Keys(d.byName))
}

// Len returns the number of entries.
func (d *Directory) Len() int { return len(d.byName) }
