package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates the key reference with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("241"))

	var help strings.Builder
	line := func(b key.Binding) {
		h := b.Help()
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
	}
	section := func(name string, bindings ...key.Binding) {
		help.WriteString(sectionStyle.Render(name))
		help.WriteString("\n")
		for _, b := range bindings {
			line(b)
		}
		help.WriteString("\n")
	}

	k := r.keys

	help.WriteString(titleStyle.Render("Station Picker Help"))
	help.WriteString("\n")

	section("Listbox", k.Combobox.Down, k.Combobox.Up, k.Combobox.Expand)
	help.WriteString(noteStyle.Render("  Arrow keys open a closed listbox; moving past either end wraps around."))
	help.WriteString("\n\n")

	section("Selection", k.Combobox.Confirm, k.Combobox.Close)
	help.WriteString(noteStyle.Render("  Esc closes an open listbox, or clears the search text when closed."))
	help.WriteString("\n\n")

	section("Fields", k.Form.Next, k.Form.Prev)
	help.WriteString(noteStyle.Render("  Typing filters stations by name. Opening one listbox closes the other."))
	help.WriteString("\n\n")

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("click ▾"), descStyle.Render("Toggle the listbox")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("click row"), descStyle.Render("Select a station")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("click away"), descStyle.Render("Close the listbox")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line(k.Help)
	h := k.Quit.Help()
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	return ShowPager(helpContent)
}

// ShowPager runs ov over content on the current terminal
func ShowPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
