package labels

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/optimistic"
	"github.com/thenoetrevino/hue/internal/tui/state"
)

type loadedMsg struct{ err error }

type refreshedMsg struct{ err error }

type savedMsg struct {
	label   *models.Label
	created bool
	err     error
}

type groupedMsg struct {
	parent string
	count  int
	err    error
}

type deleteSettledMsg struct {
	name string
	err  error
}

type eventMsg events.Event

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.coord.Load(m.ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.coord.Refresh(m.ctx)}
	}
}

// listen waits for the next change event; it is re-armed after each one
func (m Model) listen() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

// Update handles messages and key presses
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.notifications.Add(state.LevelError, msg.err.Error())
		}
		m.clampCursor()
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.notifications.Add(state.LevelError, msg.err.Error())
		}
		m.clampCursor()
		return m, nil

	case eventMsg:
		if m.coord.Project() == nil {
			return m, m.listen()
		}
		return m, tea.Batch(m.refresh(), m.listen())

	case savedMsg:
		if msg.err != nil {
			m.notifications.Add(state.LevelError, "Failed to save label: "+msg.err.Error())
			return m, nil
		}
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		m.notifications.Add(state.LevelInfo, fmt.Sprintf("Label '%s' %s", msg.label.Name, verb))
		return m, m.refresh()

	case groupedMsg:
		if msg.err != nil {
			m.notifications.Add(state.LevelError, "Failed to group labels: "+msg.err.Error())
			return m, nil
		}
		m.notifications.Add(state.LevelInfo, fmt.Sprintf("Added %d label(s) to '%s'", msg.count, msg.parent))
		return m, m.refresh()

	case deleteSettledMsg:
		if msg.err != nil {
			m.notifications.Add(state.LevelError, fmt.Sprintf("Could not delete '%s', it was restored: %v", msg.name, msg.err))
		} else {
			m.notifications.Add(state.LevelInfo, fmt.Sprintf("Label '%s' deleted", msg.name))
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.modal.IsOpen():
			return m.updateModal(msg)
		case m.form.IsOpen():
			return m.updateForm(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.Quit:
		return m, tea.Quit

	case m.keys.NextLabel, "down":
		m.cursor++
		m.clampCursor()
		return m, nil

	case m.keys.PrevLabel, "up":
		m.cursor--
		m.clampCursor()
		return m, nil

	case m.keys.Refresh:
		if m.coord.Project() == nil {
			return m, m.load()
		}
		return m, m.refresh()

	case m.keys.NewLabel:
		m.form.NewLabel()
		m.nameInput.SetValue("")
		m.colorInput.SetValue("")
		return m, m.focusField(fieldName)

	case m.keys.EditLabel:
		label := m.selected()
		if label == nil {
			return m, nil
		}
		m.form.EditLabel(label)
		m.nameInput.SetValue(label.Name)
		m.colorInput.SetValue(label.Color)
		return m, m.focusField(fieldName)

	case m.keys.AddToGroup:
		label := m.selected()
		if label == nil {
			return m, nil
		}
		m.modal.AddLabelToGroup(label)
		return m, nil

	case m.keys.DeleteLabel:
		return m.deleteSelected()
	}
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	label := m.selected()
	if label == nil {
		return m, nil
	}

	pending, err := m.coord.DeleteLabel(m.ctx, label.ID)
	if err != nil {
		if errors.Is(err, optimistic.ErrLabelsNotLoaded) {
			m.notifications.Add(state.LevelInfo, "Labels are still loading")
		} else {
			m.notifications.Add(state.LevelError, err.Error())
		}
		return m, nil
	}
	m.clampCursor()

	name := label.Name
	return m, func() tea.Msg {
		return deleteSettledMsg{name: name, err: pending.Wait(m.ctx)}
	}
}

func (m *Model) focusField(field int) tea.Cmd {
	m.focus = field
	if field == fieldName {
		m.colorInput.Blur()
		return m.nameInput.Focus()
	}
	m.nameInput.Blur()
	return m.colorInput.Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.Cancel()
		m.nameInput.Blur()
		m.colorInput.Blur()
		return m, nil

	case "tab", "shift+tab":
		return m, m.focusField(1 - m.focus)

	case m.keys.SaveForm:
		return m.submitForm()
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.colorInput, cmd = m.colorInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.nameInput.Value())
	color := strings.TrimSpace(m.colorInput.Value())
	if name == "" {
		m.notifications.Add(state.LevelError, "Label name cannot be empty")
		return m, nil
	}

	scope := m.coord.Scope()
	editing := m.form.Editing()
	creating := m.form.Mode() == state.FormCreating
	m.form.Submit()
	m.nameInput.Blur()
	m.colorInput.Blur()

	return m, func() tea.Msg {
		if creating {
			label, err := m.writer.CreateLabel(m.ctx, scope.Workspace, scope.ProjectID, name, color, "")
			return savedMsg{label: label, created: true, err: err}
		}
		label, err := m.writer.UpdateLabel(m.ctx, scope.Workspace, scope.ProjectID, editing.ID, name, color)
		return savedMsg{label: label, err: err}
	}
}

func (m Model) candidates() []*models.Label {
	return m.modal.Candidates(m.coord.Cache().Snapshot().Labels())
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	candidates := m.candidates()

	switch msg.String() {
	case "esc", m.keys.Quit:
		m.modal.CloseGroupModal()
		return m, nil

	case m.keys.NextLabel, "down":
		m.modal.MoveCursor(1, len(candidates))
		return m, nil

	case m.keys.PrevLabel, "up":
		m.modal.MoveCursor(-1, len(candidates))
		return m, nil

	case m.keys.ToggleChild, "space":
		if c := m.modal.Cursor(); c < len(candidates) {
			m.modal.Toggle(candidates[c].ID)
		}
		return m, nil

	case m.keys.SaveForm:
		children := m.modal.Selected(candidates)
		parent := m.modal.Parent()
		m.modal.CloseGroupModal()
		if len(children) == 0 {
			return m, nil
		}
		scope := m.coord.Scope()
		return m, func() tea.Msg {
			err := m.writer.AddLabelsToGroup(m.ctx, scope.Workspace, scope.ProjectID, parent.ID, children)
			return groupedMsg{parent: parent.Name, count: len(children), err: err}
		}
	}
	return m, nil
}
