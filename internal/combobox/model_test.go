package combobox

import (
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, settings ...Setting) *Model {
	t.Helper()
	h := newHarness()
	base := []Setting{WithRegistry(h.registry), WithDocument(h.doc)}
	m := NewModel(Config{Label: "From"}, append(base, settings...)...)
	// static cursor keeps blink ticks out of the returned commands
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return m
}

// collect runs cmd and every batched command under it
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func textChanges(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if changed, ok := msg.(SearchTextChangedMsg); ok {
			out = append(out, changed.Text)
		}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func greek(m *Model, picked *[]string) []Option {
	var out []Option
	for _, label := range []string{"Alpha", "Beta", "Gamma"} {
		label := label
		out = append(out, NewOption("opt-"+label, label, func() {
			*picked = append(*picked, label)
			m.SetValue(label)
		}))
	}
	return out
}

func TestModelDefaultsFilled(t *testing.T) {
	m := newTestModel(t)
	cfg := m.Config()

	assert.Equal(t, "From", cfg.Label)
	assert.Equal(t, "Search", cfg.Placeholder)
	assert.Equal(t, "Listbox", cfg.ListboxLabel)
	assert.Equal(t, 8, m.listbox.Height())
}

func TestModelIgnoresKeysWhenBlurred(t *testing.T) {
	m := newTestModel(t)

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.False(t, m.IsOpen())
}

func TestModelTypingEmitsTextChange(t *testing.T) {
	m := newTestModel(t)
	m.Focus()

	msgs := collect(m.Update(runes("3")))
	msgs = append(msgs, collect(m.Update(runes("0")))...)

	assert.Equal(t, "30", m.Value())
	assert.Equal(t, []string{"3", "30"}, textChanges(msgs))
	for _, msg := range msgs {
		if changed, ok := msg.(SearchTextChangedMsg); ok {
			assert.Equal(t, m.ID(), changed.ID)
		}
	}
	assert.False(t, m.IsOpen())
}

func TestModelTypingClearsActiveOption(t *testing.T) {
	m := newTestModel(t)
	var picked []string
	m.SetOptions(greek(m, &picked))
	m.Focus()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "opt-Alpha", m.ActiveOptionID())

	m.Update(runes("b"))
	assert.Empty(t, m.ActiveOptionID())
	assert.True(t, m.IsOpen())
}

func TestModelArrowNavigationAndEnter(t *testing.T) {
	m := newTestModel(t)
	var picked []string
	m.SetOptions(greek(m, &picked))
	m.Focus()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "opt-Beta", m.ActiveOptionID())
	assert.Contains(t, m.View(), "› Beta")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "opt-Gamma", m.ActiveOptionID())

	msgs := collect(m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, []string{"Gamma"}, picked)
	assert.Equal(t, "Gamma", m.Value())
	assert.False(t, m.IsOpen())
	assert.Empty(t, textChanges(msgs))
}

func TestModelAltDownExpands(t *testing.T) {
	m := newTestModel(t)
	var picked []string
	m.SetOptions(greek(m, &picked))
	m.Focus()

	m.Update(tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	assert.True(t, m.IsOpen())
	assert.Empty(t, m.ActiveOptionID())
}

func TestModelEscapeDuality(t *testing.T) {
	m := newTestModel(t)
	var picked []string
	m.SetOptions(greek(m, &picked))
	m.Focus()
	m.SetValue("Jenkintown")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	msgs := collect(m.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, m.IsOpen())
	assert.Equal(t, "Jenkintown", m.Value())
	assert.Empty(t, textChanges(msgs))

	msgs = collect(m.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, "", m.Value())
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, []string{""}, textChanges(msgs))
}

func TestModelClickIconOpensAndFocuses(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.Focused())

	m.Click(Target{Part: PartIcon}, Target{Part: PartBoundary})
	m.Flush()

	assert.True(t, m.IsOpen())
	assert.True(t, m.Focused())
	assert.Contains(t, m.View(), "Listbox")

	m.Click(Target{Part: PartIcon}, Target{Part: PartBoundary})
	assert.False(t, m.IsOpen())
	assert.NotContains(t, m.View(), "Listbox")
}

func TestModelClickOptionSelects(t *testing.T) {
	m := newTestModel(t)
	var picked []string
	m.SetOptions(greek(m, &picked))
	m.Open()

	m.Click(
		Target{Part: PartOption, OptionID: "opt-Alpha"},
		Target{Part: PartListbox},
		Target{Part: PartBoundary},
	)

	assert.Equal(t, []string{"Alpha"}, picked)
	assert.Equal(t, "Alpha", m.Value())
	assert.False(t, m.IsOpen())
}

func TestModelOutsideClickCloses(t *testing.T) {
	m := newTestModel(t)
	m.Open()

	m.Combobox().Document().Dispatch(NewClickEvent())
	assert.False(t, m.IsOpen())
}

func TestModelViewShowsScrollWindow(t *testing.T) {
	h := newHarness()
	m := NewModel(Config{MaxVisible: 2}, WithRegistry(h.registry), WithDocument(h.doc))
	m.SetOptions(numbered(5))
	m.Open()

	view := m.View()
	assert.Contains(t, view, "1-2 of 5")
	assert.Contains(t, view, "Option 0")
	assert.NotContains(t, view, "Option 4")
}

func TestModelSetOptionsDropsMissingActive(t *testing.T) {
	m := newTestModel(t)
	var picked []string
	m.SetOptions(greek(m, &picked))
	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "opt-Gamma", m.ActiveOptionID())

	m.SetOptions(greek(m, &picked)[:1])
	assert.Empty(t, m.ActiveOptionID())
}

func TestModelHitTestWithoutZonesIsNil(t *testing.T) {
	m := newTestModel(t)
	assert.Nil(t, m.HitTest(tea.MouseMsg{X: 1, Y: 1}))
}

func TestKeyMapTranslate(t *testing.T) {
	k := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want KeyEvent
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, KeyEvent{Code: KeyArrowDown}},
		{tea.KeyMsg{Type: tea.KeyDown, Alt: true}, KeyEvent{Code: KeyArrowDown, Alt: true}},
		{tea.KeyMsg{Type: tea.KeyUp}, KeyEvent{Code: KeyArrowUp}},
		{tea.KeyMsg{Type: tea.KeyUp, Alt: true}, KeyEvent{Code: KeyArrowUp, Alt: true}},
		{tea.KeyMsg{Type: tea.KeyEsc}, KeyEvent{Code: KeyEscape}},
		{tea.KeyMsg{Type: tea.KeyEnter}, KeyEvent{Code: KeyEnter}},
		{runes("x"), KeyEvent{Code: KeyOther}},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, k.Translate(tt.msg))
		})
	}
}
