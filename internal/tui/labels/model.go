// Package labels is the terminal labels settings screen: the resolved label
// rows of one project with create, edit, group and optimistic delete.
package labels

import (
	"context"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/events"
	"github.com/thenoetrevino/hue/internal/hierarchy"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/optimistic"
	"github.com/thenoetrevino/hue/internal/tui/state"
)

// Writer saves labels. app.Local implements it for the local store and the
// launcher adapts the remote client to it.
type Writer interface {
	CreateLabel(ctx context.Context, workspace, projectID, name, color, parent string) (*models.Label, error)
	// UpdateLabel renames a label; an empty color keeps the current one
	UpdateLabel(ctx context.Context, workspace, projectID, labelID, name, color string) (*models.Label, error)
	AddLabelsToGroup(ctx context.Context, workspace, projectID, parentID string, childIDs []string) error
}

// Listener delivers change events for a project
type Listener interface {
	Listen(ctx context.Context, projectID string) (<-chan events.Event, error)
}

// form field focus
const (
	fieldName = iota
	fieldColor
)

// Model is the labels settings screen
type Model struct {
	ctx    context.Context
	coord  *optimistic.Coordinator
	writer Writer
	keys   config.KeyMappings
	styles styles

	updates <-chan events.Event

	form          *state.LabelFormState
	modal         *state.GroupModalState
	notifications *state.NotificationState

	nameInput  textinput.Model
	colorInput textinput.Model
	focus      int

	cursor int
	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithUpdates refetches the labels whenever an event arrives on ch
func WithUpdates(ch <-chan events.Event) Option {
	return func(m *Model) {
		m.updates = ch
	}
}

// New creates the screen. ctx bounds every remote call the screen starts.
func New(ctx context.Context, coord *optimistic.Coordinator, writer Writer, cfg *config.Config, opts ...Option) Model {
	m := Model{
		ctx:           ctx,
		coord:         coord,
		writer:        writer,
		keys:          cfg.KeyMappings,
		styles:        newStyles(cfg.ColorScheme),
		form:          state.NewLabelFormState(),
		modal:         state.NewGroupModalState(),
		notifications: state.NewNotificationState(),
	}

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Label name"
	m.nameInput.CharLimit = 50
	m.nameInput.Prompt = "Name:  "

	m.colorInput = textinput.New()
	m.colorInput.Placeholder = "#7D56F4"
	m.colorInput.CharLimit = 7
	m.colorInput.Prompt = "Color: "

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the project and its labels and starts listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.listen())
}

// view returns what the screen draws for the current cache contents
func (m Model) view() hierarchy.View {
	return hierarchy.Render(m.coord.Cache().Snapshot())
}

// row is one selectable line: a top-level label or a child inside a group
type row struct {
	label  *models.Label
	header bool
	child  bool
	last   bool
}

func (m Model) rows() []row {
	var rows []row
	for _, d := range m.view().Directives {
		rows = append(rows, row{label: d.Label, header: d.Kind == hierarchy.KindGroup})
		for i, c := range d.Children {
			rows = append(rows, row{label: c, child: true, last: i == len(d.Children)-1})
		}
	}
	return rows
}

// selected returns the highlighted label, nil when there is none
func (m Model) selected() *models.Label {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].label
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	m.cursor = max(0, min(m.cursor, n-1))
}
