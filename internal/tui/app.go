package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/extbundle/internal/config"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateConfirm
	stateSaved
	stateError
)

type Model struct {
	state       state
	values      *ConfigValues
	path        string
	menuIndex   int
	currentForm *huh.Form
	saved       *config.Config
	err         error
	dirty       bool
	saveFunc    func(*config.Config) error
	accessible  bool
}

type Options struct {
	// Config is the starting point; nil means the defaults
	Config *config.Config
	// Path is the file being edited, shown in the header
	Path       string
	SaveFunc   func(*config.Config) error
	Accessible bool
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return Model{
		state:      stateMenu,
		values:     FromConfig(cfg),
		path:       opts.Path,
		saveFunc:   opts.SaveFunc,
		accessible: opts.Accessible,
	}
}

// Saved returns the last configuration written, or nil
func (m Model) Saved() *config.Config {
	return m.saved
}

// Err returns the error that ended the session, if any
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.updateMenu(key)
		case stateConfirm:
			return m.updateConfirm(key)
		case stateSaved, stateError:
			return m, tea.Quit
		case stateForm:
			if key.String() == "esc" {
				m.state = stateMenu
				m.currentForm = nil
				return m, nil
			}
		}
	}

	if m.state == stateForm && m.currentForm != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.dirty {
			m.state = stateConfirm
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}

	case "down", "j":
		if m.menuIndex < len(Categories) {
			m.menuIndex++
		}

	case "enter":
		if m.menuIndex == len(Categories) {
			return m.handleSave()
		}
		m.currentForm = GetFormForCategory(Categories[m.menuIndex].ID, m.values, m.accessible)
		if m.currentForm == nil {
			return m, nil
		}
		m.state = stateForm
		return m, m.currentForm.Init()

	case "s":
		return m.handleSave()
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.currentForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.currentForm = f
	}

	switch m.currentForm.State {
	case huh.StateCompleted:
		m.dirty = true
		fallthrough
	case huh.StateAborted:
		m.state = stateMenu
		m.currentForm = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.handleSave()
	case "n", "N", "esc":
		return m, tea.Quit
	case "c":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) handleSave() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err != nil {
		m.state = stateError
		m.err = err
		return m, nil
	}

	if m.saveFunc != nil {
		if err := m.saveFunc(cfg); err != nil {
			m.state = stateError
			m.err = err
			return m, nil
		}
	}

	m.saved = cfg
	m.state = stateSaved
	m.dirty = false
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("extbundle configuration"))
	s.WriteString("\n")
	if m.path != "" {
		s.WriteString(PathStyle.Render(m.path))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	switch m.state {
	case stateMenu:
		s.WriteString(m.renderMenu())
	case stateForm:
		if m.currentForm != nil {
			s.WriteString(m.currentForm.View())
		}
	case stateConfirm:
		s.WriteString(ConfirmStyle.Render("You have unsaved changes.\n\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel"))
	case stateSaved:
		s.WriteString(SuccessStyle.Render("Configuration saved."))
		s.WriteString("\n\nPress any key to exit.")
	case stateError:
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\nPress any key to exit.")
	}

	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder

	for i, cat := range Categories {
		cursor := "  "
		style := UnselectedStyle
		if i == m.menuIndex {
			cursor = "> "
			style = SelectedStyle
		}
		s.WriteString(style.Render(cursor + cat.Name))
		if i == m.menuIndex {
			s.WriteString(DescriptionStyle.Render("  " + cat.Description))
		}
		s.WriteString("\n")
	}

	saveStyle := UnselectedStyle
	saveCursor := "  "
	if m.menuIndex == len(Categories) {
		saveCursor = "> "
		saveStyle = SelectedStyle
	}
	saveText := saveCursor + "Save Configuration"
	if m.dirty {
		saveText += " *"
	}
	s.WriteString("\n")
	s.WriteString(saveStyle.Render(saveText))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("↑/↓ navigate • enter select • s save • q quit"))

	return s.String()
}

// Run starts the editor and blocks until the user quits. It returns the
// save or validation error that ended the session, if any.
func Run(opts Options) error {
	var programOpts []tea.ProgramOption
	if !opts.Accessible {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	final, err := tea.NewProgram(NewModel(opts), programOpts...).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
