package nodelink

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/kintree/pkg/family"
)

// Options configures the diagram.
type Options struct {
	// Detailed adds the surname, ID and birth date under the display name.
	Detailed bool

	// Arrows draws arrowheads from parent to child. Off by default.
	Arrows bool

	// Photos draws each person's photo above the name when the file
	// exists.
	Photos bool

	// Highlight fills these people with the accent colour, typically a
	// query result.
	Highlight []string

	// Focus outlines these people, typically the query subjects.
	Focus []string
}

// Palette.
const (
	colorFather    = "#4a7fb5"
	colorMother    = "#c0577e"
	colorHighlight = "#ffe08a"
	colorFocus     = "#d9822b"
	colorBorder    = "#555555"
)

// ToDOT converts a family tree to Graphviz DOT. Nodes appear in insertion
// order and are labelled with the display name from [family.NewDirectory].
func ToDOT(t *family.Tree, opts Options) string {
	dir := family.NewDirectory(t)
	highlight := toSet(opts.Highlight)
	focus := toSet(opts.Focus)
	var photos map[string]string
	if opts.Photos {
		photos = PhotoFiles(t)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, color=%q, fontname=\"Helvetica\", fontsize=18, margin=\"0.2,0.1\"];\n", colorBorder)
	if opts.Arrows {
		buf.WriteString("  edge [dir=forward, arrowsize=0.8, penwidth=1.5];\n")
	} else {
		buf.WriteString("  edge [dir=none, penwidth=1.5];\n")
	}
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, p := range t.People() {
		name, _ := dir.Name(p.ID)
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, name, opts.Detailed))}
		if highlight[p.ID] {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorHighlight))
		}
		if focus[p.ID] {
			attrs = append(attrs, fmt.Sprintf("color=%q", colorFocus), "penwidth=3")
		}
		if path, ok := photos[p.ID]; ok {
			attrs = append(attrs, fmt.Sprintf("image=%q", path), "imagescale=true", "imagepos=tc", "labelloc=b",
				fmt.Sprintf("width=%.1f", photoNodeWidth), fmt.Sprintf("height=%.1f", photoNodeHeight))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range t.Relations() {
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", r.Parent, r.Child, roleColor(r.Role))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Node size in inches when a photo is drawn above the label.
const (
	photoNodeWidth  = 1.6
	photoNodeHeight = 2.2
)

// PhotoFiles maps person IDs to photo paths that exist on disk.
func PhotoFiles(t *family.Tree) map[string]string {
	photos := make(map[string]string)
	for _, p := range t.People() {
		if path := t.PhotoPath(p); path != "" && fileExists(path) {
			photos[p.ID] = path
		}
	}
	return photos
}

func fmtLabel(p family.Person, name string, detailed bool) string {
	if name == "" {
		name = p.Name
	}
	if !detailed {
		return name
	}
	lines := []string{name}
	if p.Surname != "" && !strings.Contains(name, p.Surname) {
		lines = append(lines, p.Surname)
	}
	lines = append(lines, p.ID)
	if !p.BirthDate.IsZero() {
		lines = append(lines, "b. "+p.BirthDate.Format("2006-01-02"))
	}
	return strings.Join(lines, "\n")
}

func roleColor(r family.Role) string {
	if r == family.RoleMother {
		return colorMother
	}
	return colorFather
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
