package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cchalm/svgtsx/internal/dialog"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

var (
	cancelKey = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm"))
)

func filterTitle(prefix string, filter dialog.DialogFilter) string {
	var exts []string
	for _, ext := range filter.Extensions {
		exts = append(exts, "*."+strings.TrimPrefix(ext, "."))
	}
	return titleStyle.Render(fmt.Sprintf("%s: %s (%s)", prefix, filter.Label, strings.Join(exts, ", ")))
}

// openModel lets the user browse to an existing file
type openModel struct {
	filter dialog.DialogFilter
	picker filepicker.Model
	notice string
	result dialog.PickerResult
	done   bool
}

func newOpenModel(filter dialog.DialogFilter, startDir string, showHidden bool) openModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = allowedTypes(filter)
	fp.ShowHidden = showHidden
	// esc cancels the dialog instead of navigating up
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))

	return openModel{
		filter: filter,
		picker: fp,
		result: dialog.None(),
	}
}

func (m openModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m openModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, cancelKey) {
		m.result = dialog.None()
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if selected, path := m.picker.DidSelectFile(msg); selected {
		m.result = dialog.ParseResult(path)
		m.done = true
		return m, tea.Quit
	}
	if disabled, path := m.picker.DidSelectDisabledFile(msg); disabled {
		m.notice = fmt.Sprintf("%s is not one of %s", filepath.Base(path), m.filter.Label)
	}

	return m, cmd
}

func (m openModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(filterTitle("Open", m.filter))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter open • h back • esc cancel"))
	return b.String()
}

// saveModel asks for the path to save to, prefilled with the suggested name in the start directory
type saveModel struct {
	filter dialog.DialogFilter
	input  textinput.Model
	dir    string
	result dialog.PickerResult
	done   bool
}

func newSaveModel(filter dialog.DialogFilter, startDir string, suggestedName string) saveModel {
	ti := textinput.New()
	ti.Prompt = "Save as: "
	ti.SetValue(filepath.Join(startDir, suggestedName))
	ti.CursorEnd()
	ti.Focus()

	return saveModel{
		filter: filter,
		input:  ti,
		dir:    startDir,
		result: dialog.None(),
	}
}

func (m saveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m saveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, cancelKey):
			m.result = dialog.None()
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, submitKey):
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			result := dialog.ParseResult(value)
			if path, ok := result.Local(); ok && !filepath.IsAbs(path) {
				result = dialog.LocalPath(filepath.Join(m.dir, path))
			}
			m.result = result
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m saveModel) View() string {
	if m.done {
		return ""
	}
	return filterTitle("Save", m.filter) + "\n\n" + m.input.View() + "\n\n" +
		hintStyle.Render("enter save • esc cancel")
}
