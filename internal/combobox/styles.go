package combobox

import "github.com/charmbracelet/lipgloss"

// ActiveDescendantClass is the class name of the highlight marker
const ActiveDescendantClass = "active-descendant"

// Styles contains the style definitions for a combobox
type Styles struct {
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Icon         lipgloss.Style
	Listbox      lipgloss.Style
	ListboxLabel lipgloss.Style
	Option       lipgloss.Style
	Presentation lipgloss.Style
	Scroll       lipgloss.Style

	// Classes are looked up by the *Class fields of Config
	Classes map[string]lipgloss.Style
}

// DefaultStyles creates a new Styles instance with default values
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().Bold(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Icon: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Listbox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ListboxLabel: lipgloss.NewStyle().Faint(true).Italic(true),
		Option:       lipgloss.NewStyle(),
		Presentation: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Classes: map[string]lipgloss.Style{
			ActiveDescendantClass: lipgloss.NewStyle().
				Foreground(lipgloss.Color("226")).
				Background(lipgloss.Color("238")).
				Bold(true),
			"dim":    lipgloss.NewStyle().Faint(true),
			"accent": lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
			"bold":   lipgloss.NewStyle().Bold(true),
			"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}

// Class returns the style registered under name, or an empty style
func (s Styles) Class(name string) lipgloss.Style {
	if name == "" {
		return lipgloss.NewStyle()
	}
	if st, ok := s.Classes[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// WithClass returns a copy of s with name bound to style
func (s Styles) WithClass(name string, style lipgloss.Style) Styles {
	classes := make(map[string]lipgloss.Style, len(s.Classes)+1)
	for k, v := range s.Classes {
		classes[k] = v
	}
	classes[name] = style
	s.Classes = classes
	return s
}
