package labels

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hue/internal/tui/state"
)

// View renders the screen in the alternate buffer
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	var b strings.Builder

	title := "Labels"
	if p := m.coord.Project(); p != nil {
		title = fmt.Sprintf("Labels · %s", p.Name)
	}
	b.WriteString(m.styles.title.Render(title) + "\n\n")

	b.WriteString(m.viewRows())

	if m.form.IsOpen() {
		b.WriteString("\n" + m.viewForm() + "\n")
	}
	if m.modal.IsOpen() {
		b.WriteString("\n" + m.viewModal() + "\n")
	}

	if n, ok := m.notifications.Latest(); ok {
		style := m.styles.info
		if n.Level == state.LevelError {
			style = m.styles.error
		}
		b.WriteString("\n" + style.Render(n.Message) + "\n")
	}

	b.WriteString("\n" + m.styles.subtle.Render(m.help()))
	return b.String()
}

func (m Model) viewRows() string {
	v := m.view()
	var b strings.Builder

	if v.Loading {
		for range v.Placeholders {
			b.WriteString("  " + m.styles.placeholder.Render(strings.Repeat("░", 18)) + "\n")
		}
		return b.String()
	}

	rows := m.rows()
	if len(rows) == 0 {
		return m.styles.subtle.Render("  No labels yet, press "+m.keys.NewLabel+" to create one") + "\n"
	}

	for i, r := range rows {
		line := chip(r.label.Name, r.label.Color)
		if r.child {
			branch := "├─"
			if r.last {
				branch = "└─"
			}
			line = m.styles.branch.Render(branch) + " " + line
		}
		if i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewForm() string {
	style := m.styles.createForm
	heading := "New label"
	if editing := m.form.Editing(); editing != nil {
		style = m.styles.editForm
		heading = "Edit " + editing.Name
	}
	body := strings.Join([]string{
		m.styles.title.Render(heading),
		m.nameInput.View(),
		m.colorInput.View(),
	}, "\n")
	return style.Render(body)
}

func (m Model) viewModal() string {
	parent := m.modal.Parent()
	lines := []string{m.styles.title.Render("Add to " + parent.Name)}

	candidates := m.candidates()
	if len(candidates) == 0 {
		lines = append(lines, m.styles.subtle.Render("No other labels"))
	}
	for i, c := range candidates {
		box := "[ ]"
		if m.modal.IsSelected(c.ID) {
			box = "[x]"
		}
		line := box + " " + chip(c.Name, c.Color)
		if i == m.modal.Cursor() {
			line = m.styles.selected.Render(line)
		}
		lines = append(lines, line)
	}
	return m.styles.modal.Render(strings.Join(lines, "\n"))
}

func (m Model) help() string {
	k := m.keys
	switch {
	case m.modal.IsOpen():
		return "space: toggle  " + k.SaveForm + ": add  esc: close"
	case m.form.IsOpen():
		return "tab: next field  " + k.SaveForm + ": save  esc: cancel"
	}
	return fmt.Sprintf("%s: new  %s: edit  %s: group  %s: delete  %s: refresh  %s: quit",
		k.NewLabel, k.EditLabel, k.AddToGroup, k.DeleteLabel, k.Refresh, k.Quit)
}
