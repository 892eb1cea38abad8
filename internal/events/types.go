package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventLabelsChanged is sent after any label of a project was written
	EventLabelsChanged EventType = "labels_changed"
	// EventProjectChanged is sent after a project or its members changed
	EventProjectChanged EventType = "project_changed"
)

// AllProjects as a ProjectID means the event concerns every project
const AllProjects = ""

// Event represents a change notification
type Event struct {
	Type       EventType `json:"type"`
	ProjectID  string    `json:"project_id"` // For filtering - which project was modified
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // Monotonically increasing, assigned on delivery
}

// Matches reports whether a listener subscribed to projectID should see e
func (e Event) Matches(projectID string) bool {
	return projectID == AllProjects || e.ProjectID == AllProjects || e.ProjectID == projectID
}
