package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/kintree/pkg/dataset"
	"github.com/matzehuels/kintree/pkg/kin"
)

func newTestExplore(t *testing.T) ExploreModel {
	t.Helper()
	tr, err := dataset.Read(strings.NewReader(simpsons), dataset.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	return NewExploreModel(kin.New(tr, nil))
}

func typeText(m ExploreModel, s string) ExploreModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(ExploreModel)
}

func press(m ExploreModel, k tea.KeyType) ExploreModel {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(ExploreModel)
}

func TestExploreAncestors(t *testing.T) {
	m := newTestExplore(t)
	m = typeText(m, "Bart")
	m = press(m, tea.KeyTab)
	m = typeText(m, "Lisa")

	got := m.Ancestors()
	want := []string{"Homer", "Marge", "Abraham", "Mona", "Clancy", "Jacqueline"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}

	m = press(m, tea.KeyCtrlT)
	got = m.Ancestors()
	if strings.Join(got, ",") != "Homer,Marge" {
		t.Errorf("closest Ancestors() = %v, want [Homer Marge]", got)
	}
	if !strings.Contains(m.View(), "Closest common ancestors") {
		t.Error("view should show the closest title")
	}
}

func TestExploreDescendants(t *testing.T) {
	m := newTestExplore(t)
	m = press(m, tea.KeyShiftTab)
	m = typeText(m, "Selma")

	if got := strings.Join(m.Descendants(), ","); got != "Selma,Ling" {
		t.Errorf("Descendants() = %s, want Selma,Ling", got)
	}
	if !strings.Contains(m.View(), " 2. Ling") {
		t.Errorf("view should number descendants:\n%s", m.View())
	}
}

func TestExploreCompletion(t *testing.T) {
	m := newTestExplore(t)
	m = typeText(m, "ma")

	if got := m.suggestions(); strings.Join(got, ",") != "Maggie,Marge" {
		t.Errorf("suggestions() = %v, want [Maggie Marge]", got)
	}

	m = press(m, tea.KeyEnter)
	if got := m.Value(fieldA); got != "Maggie" {
		t.Errorf("enter should complete to Maggie, got %q", got)
	}
	if s := m.suggestions(); len(s) != 0 {
		t.Errorf("an exact match has no suggestions, got %v", s)
	}
}

func TestExploreUnknownName(t *testing.T) {
	m := newTestExplore(t)
	m = typeText(m, "Bart")
	m = press(m, tea.KeyTab)
	m = typeText(m, "Nelson")

	if got := m.Ancestors(); got != nil {
		t.Errorf("Ancestors() = %v, want nil", got)
	}
	if !strings.Contains(m.View(), "unknown: Nelson") {
		t.Errorf("view should flag the unknown name:\n%s", m.View())
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}
