package cli

import (
	"strings"
	"testing"
)

// assertOrder checks that every name occurs in out, in the given order.
func assertOrder(t *testing.T, out string, names ...string) {
	t.Helper()
	last := -1
	for _, n := range names {
		i := strings.Index(out, n)
		if i < 0 {
			t.Errorf("output is missing %q:\n%s", n, out)
			return
		}
		if i < last {
			t.Errorf("%q appears out of order:\n%s", n, out)
		}
		last = i
	}
}

func TestPeopleCommand(t *testing.T) {
	path := setupEnv(t)
	out, _, err := runCLI(t, "-d", path, "people")
	if err != nil {
		t.Fatalf("people: %v", err)
	}
	for _, want := range []string{"Name", "Father", "Abraham", "1907-05-25", "Jacqueline", "11 people", "13 relations"} {
		if !strings.Contains(out, want) {
			t.Errorf("people output missing %q:\n%s", want, out)
		}
	}
}

func TestAncestorsCommand(t *testing.T) {
	path := setupEnv(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "siblings share everyone",
			args: []string{"ancestors", "Bart", "Lisa"},
			want: []string{"Homer", "Marge", "Abraham", "Mona", "Clancy", "Jacqueline"},
		},
		{
			name:    "siblings closest",
			args:    []string{"ancestors", "Bart", "Lisa", "--closest"},
			want:    []string{"Homer", "Marge"},
			notWant: []string{"Abraham", "Clancy"},
		},
		{
			name:    "cousins",
			args:    []string{"ancestors", "Bart", "Ling"},
			want:    []string{"Clancy", "Jacqueline"},
			notWant: []string{"Homer", "Selma", "Abraham"},
		},
		{
			name: "same person lists all ancestors",
			args: []string{"ancestors", "Ling", "Ling"},
			want: []string{"Selma", "Clancy", "Jacqueline"},
		},
		{
			name: "full name accepted",
			args: []string{"ancestors", "Homer Simpson", "Homer"},
			want: []string{"Abraham", "Mona"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, append([]string{"-d", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("ancestors: %v", err)
			}
			body := out[strings.Index(out, "\n")+1:]
			assertOrder(t, body, tt.want...)
			for _, n := range tt.notWant {
				if strings.Contains(body, n) {
					t.Errorf("output should not list %q:\n%s", n, out)
				}
			}
		})
	}
}

func TestAncestorsNoneShared(t *testing.T) {
	path := setupEnv(t)
	out, _, err := runCLI(t, "-d", path, "ancestors", "Homer", "Marge")
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if !strings.Contains(out, "no common ancestors") {
		t.Errorf("expected the empty-result message:\n%s", out)
	}
}

func TestAncestorsUnknownName(t *testing.T) {
	path := setupEnv(t)
	out, errOut, err := runCLI(t, "-d", path, "ancestors", "Bart", "Nelson")
	if err != nil {
		t.Fatalf("unknown names are not an error: %v", err)
	}
	if !strings.Contains(errOut, `"Nelson"`) {
		t.Errorf("expected a warning naming Nelson, got %q", errOut)
	}
	if !strings.Contains(out, "no common ancestors") {
		t.Errorf("expected an empty result:\n%s", out)
	}
}

func TestAncestorsArgCount(t *testing.T) {
	path := setupEnv(t)
	if _, _, err := runCLI(t, "-d", path, "ancestors", "Bart"); err == nil {
		t.Error("expected an error for a single name")
	}
}

func TestDescendantsCommand(t *testing.T) {
	path := setupEnv(t)
	out, _, err := runCLI(t, "-d", path, "descendants", "Abraham")
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	assertOrder(t, out, "1. Abraham", "2. Homer", "3. Bart", "4. Lisa", "5. Maggie")
	if strings.Contains(out, "Marge") {
		t.Errorf("Marge is not a descendant of Abraham:\n%s", out)
	}
}

func TestDescendantsThroughMother(t *testing.T) {
	path := setupEnv(t)
	out, _, err := runCLI(t, "-d", path, "descendants", "Jacqueline")
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	assertOrder(t, out, "Jacqueline", "Marge", "Bart", "Lisa", "Maggie", "Selma", "Ling")
}

func TestDescendantsUnknownName(t *testing.T) {
	path := setupEnv(t)
	out, errOut, err := runCLI(t, "-d", path, "descendants", "Nelson")
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if out != "" {
		t.Errorf("expected no listing, got %q", out)
	}
	if !strings.Contains(errOut, "Nelson") {
		t.Errorf("expected a warning, got %q", errOut)
	}
}
