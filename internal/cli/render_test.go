package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		output    string
		input     string
		want      string
	}{
		{"next to dataset", "", "", "data/family.json", "data/family"},
		{"output dir", "out", "", "data/family.yaml", filepath.Join("out", "family")},
		{"explicit output wins", "out", "tree.svg", "data/family.json", "tree"},
		{"unknown extension kept", "", "tree.v2", "family.json", "tree.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{}
			c.Config.OutputDir = tt.outputDir
			if got := c.basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths("tree", "tree.svg", []string{"svg"})
	if single["svg"] != "tree.svg" {
		t.Errorf("single format path = %q, want tree.svg", single["svg"])
	}

	multi := outputPaths("out/tree", "", []string{"svg", "png"})
	if multi["svg"] != "out/tree.svg" || multi["png"] != "out/tree.png" {
		t.Errorf("multi format paths = %v", multi)
	}
}

func TestRenderOptsHighlight(t *testing.T) {
	tests := []struct {
		name    string
		opts    renderOpts
		mode    string
		names   int
		wantErr bool
	}{
		{"none", renderOpts{}, "", 0, false},
		{"ancestors", renderOpts{ancestors: "Bart, Ling"}, "ancestors", 2, false},
		{"closest", renderOpts{ancestors: "Bart,Ling", closest: true}, "closest", 2, false},
		{"descendants", renderOpts{descendants: " Abraham "}, "descendants", 1, false},
		{"closest alone", renderOpts{closest: true}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.opts.highlight()
			if (err != nil) != tt.wantErr {
				t.Fatalf("highlight() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(h.Mode) != tt.mode || len(h.Names) != tt.names {
				t.Errorf("highlight() = %+v, want mode %q with %d names", h, tt.mode, tt.names)
			}
		})
	}
}

func TestRenderCommandDOT(t *testing.T) {
	path := setupEnv(t)
	dst := filepath.Join(t.TempDir(), "nested", "tree.dot")

	out, _, err := runCLI(t, "-d", path, "render", "-f", "dot", "-o", dst, "--highlight-ancestors", "Bart,Ling", "--closest")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph") {
		t.Errorf("output is not DOT:\n%s", dot)
	}
	// Clancy and Jacqueline are filled, Bart and Ling outlined.
	for _, want := range []string{
		`"03" [label="Clancy", fillcolor=`,
		`"04" [label="Jacqueline", fillcolor=`,
		`"08" [label="Bart", color=`,
		`"11" [label="Ling", color=`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "penwidth=3"); n != 2 {
		t.Errorf("want two focused nodes, got %d", n)
	}
	if !strings.Contains(out, dst) || !strings.Contains(out, "fresh") {
		t.Errorf("summary should name the file and report a fresh render:\n%s", out)
	}
}

func TestRenderUsesCache(t *testing.T) {
	path := setupEnv(t)
	dir := filepath.Dir(path)

	if _, _, err := runCLI(t, "-d", path, "render", "-f", "dot"); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "family.dot")); err != nil {
		t.Fatalf("output next to dataset: %v", err)
	}

	out, _, err := runCLI(t, "-d", path, "render", "-f", "dot")
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second render should be served from cache:\n%s", out)
	}

	out, _, err = runCLI(t, "-d", path, "render", "-f", "dot", "--refresh")
	if err != nil {
		t.Fatalf("refresh render: %v", err)
	}
	if !strings.Contains(out, "fresh") {
		t.Errorf("--refresh should re-render:\n%s", out)
	}
}

func TestRenderConfigDefaults(t *testing.T) {
	path := setupEnv(t)
	outDir := filepath.Join(t.TempDir(), "diagrams")
	writeConfig(t, "output_dir = \""+filepath.ToSlash(outDir)+"\"\nformats = [\"dot\"]\ndetailed = true\nno_cache = true\n")

	if _, _, err := runCLI(t, "-d", path, "render"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "family.dot"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "b. 1907-05-25") {
		t.Errorf("detailed labels expected from config:\n%s", data)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	path := setupEnv(t)
	if _, _, err := runCLI(t, "-d", path, "render", "-f", "pdf"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestRenderUnknownHighlight(t *testing.T) {
	path := setupEnv(t)
	dst := filepath.Join(t.TempDir(), "tree.dot")
	_, errOut, err := runCLI(t, "-d", path, "render", "-f", "dot", "-o", dst, "--highlight-descendants", "Nelson")
	if err != nil {
		t.Fatalf("unknown highlight names are not an error: %v", err)
	}
	if !strings.Contains(errOut, "Nelson") {
		t.Errorf("expected a warning, got %q", errOut)
	}
}
