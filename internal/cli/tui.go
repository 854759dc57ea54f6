package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/kin"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

const (
	maxSuggestions = 5
	minPaneWidth   = 30
)

// =============================================================================
// explore command
// =============================================================================

func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Browse ancestors and descendants interactively",
		Long: `Browse the family tree in the terminal.

Type two names in the top fields to see their common ancestors and one name
in the bottom field to see that person's descendants. Results update as you
type.

  tab / shift+tab   move between fields
  enter             complete the name from the first suggestion
  ctrl+t            toggle closest common ancestors only
  esc / ctrl+c      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
				printNextStep(cmd.ErrOrStderr(), "For scripts use", "kintree ancestors NAME_A NAME_B")
				printNextStep(cmd.ErrOrStderr(), "or", "kintree descendants NAME")
				return fmt.Errorf("explore needs an interactive terminal")
			}
			eng, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewExploreModel(eng), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// ExploreModel - live ancestor and descendant queries
// =============================================================================

// Explore fields.
const (
	fieldA = iota
	fieldB
	fieldDescendants
	fieldCount
)

// ExploreModel is the bubbletea model behind the explore command.
type ExploreModel struct {
	eng     *kin.Engine
	names   []string
	inputs  [fieldCount]textinput.Model
	focus   int
	closest bool
	width   int
}

// NewExploreModel creates an explore model over eng with the first field
// focused.
func NewExploreModel(eng *kin.Engine) ExploreModel {
	m := ExploreModel{eng: eng, names: eng.Directory().Names()}
	placeholders := [fieldCount]string{"first person", "second person", "ancestor"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "› "
		ti.PromptStyle = StyleDim
		ti.CharLimit = 64
		m.inputs[i] = ti
	}
	m.inputs[fieldA].Focus()
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "ctrl+t":
			m.closest = !m.closest
			return m, nil
		case "enter":
			if s := m.suggestions(); len(s) > 0 {
				m.inputs[m.focus].SetValue(s[0])
				m.inputs[m.focus].CursorEnd()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves the cursor to field i.
func (m *ExploreModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// Value returns the trimmed text of field i.
func (m ExploreModel) Value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

// suggestions lists names starting with the focused field's text,
// case-insensitively. A name that already matches exactly yields none.
func (m ExploreModel) suggestions() []string {
	prefix := strings.ToLower(m.Value(m.focus))
	if prefix == "" {
		return nil
	}
	var out []string
	for _, n := range m.names {
		lower := strings.ToLower(n)
		if lower == prefix {
			return nil
		}
		if strings.HasPrefix(lower, prefix) {
			out = append(out, n)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

// Ancestors returns the current common ancestor listing, or nil while
// either name is unresolved.
func (m ExploreModel) Ancestors() []string {
	a, b := m.Value(fieldA), m.Value(fieldB)
	if _, ok := m.eng.ResolveName(a); !ok {
		return nil
	}
	if _, ok := m.eng.ResolveName(b); !ok {
		return nil
	}
	if m.closest {
		return m.eng.DisplayNames(m.eng.ClosestCommonAncestorsByName(a, b))
	}
	return m.eng.DisplayNames(m.eng.CommonAncestorsByName(a, b))
}

// Descendants returns the current descendant listing.
func (m ExploreModel) Descendants() []string {
	return m.eng.DisplayNames(m.eng.DescendantsByName(m.Value(fieldDescendants)))
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore family tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab next field  ⏎ complete  ctrl+t closest  esc quit"))
	b.WriteString("\n\n")

	ancestors := lipgloss.JoinVertical(lipgloss.Left,
		m.inputs[fieldA].View(),
		m.inputs[fieldB].View(),
		"",
		m.ancestorsView(),
	)
	descendants := lipgloss.JoinVertical(lipgloss.Left,
		m.inputs[fieldDescendants].View(),
		"",
		m.descendantsView(),
	)

	left, right := paneStyle.Width(m.paneWidth()), paneStyle.Width(m.paneWidth())
	if m.focus == fieldDescendants {
		right = right.BorderForeground(colorCyan)
	} else {
		left = left.BorderForeground(colorCyan)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left.Render(ancestors), " ", right.Render(descendants)))
	b.WriteString("\n")

	if s := m.suggestions(); len(s) > 0 {
		b.WriteString("\n")
		for i, name := range s {
			if i == 0 {
				b.WriteString(listSelectedStyle.Render("  ▸ " + name))
			} else {
				b.WriteString(listDimStyle.Render("    " + name))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m ExploreModel) ancestorsView() string {
	title := "Common ancestors"
	if m.closest {
		title = "Closest common ancestors"
	}
	lines := []string{StyleHighlight.Render(title)}

	a, b := m.Value(fieldA), m.Value(fieldB)
	switch {
	case a == "" || b == "":
		lines = append(lines, listDimStyle.Render("enter two names"))
	case !m.known(a):
		lines = append(lines, StyleWarning.Render("unknown: "+a))
	case !m.known(b):
		lines = append(lines, StyleWarning.Render("unknown: "+b))
	default:
		names := m.Ancestors()
		if len(names) == 0 {
			lines = append(lines, listDimStyle.Render("none"))
		}
		for _, n := range names {
			lines = append(lines, listNormalStyle.Render("• "+n))
		}
	}
	return strings.Join(lines, "\n")
}

func (m ExploreModel) descendantsView() string {
	lines := []string{StyleHighlight.Render("Descendants")}

	name := m.Value(fieldDescendants)
	switch {
	case name == "":
		lines = append(lines, listDimStyle.Render("enter a name"))
	case !m.known(name):
		lines = append(lines, StyleWarning.Render("unknown: "+name))
	default:
		for i, n := range m.Descendants() {
			lines = append(lines, listNormalStyle.Render(fmt.Sprintf("%2d. %s", i+1, n)))
		}
	}
	return strings.Join(lines, "\n")
}

// paneWidth splits the terminal width between the two panes.
func (m ExploreModel) paneWidth() int {
	return max(minPaneWidth, (m.width-5)/2)
}

func (m ExploreModel) known(name string) bool {
	_, ok := m.eng.ResolveName(name)
	return ok
}
