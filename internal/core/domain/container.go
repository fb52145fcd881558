package domain

import "strings"

// Container is the engine's container summary as served to the dashboard.
// JSON names follow the engine so the client reads the same shape either way.
type Container struct {
	ID      string            `json:"Id"`
	Names   []string          `json:"Names"`
	Image   string            `json:"Image"`
	ImageID string            `json:"ImageID"`
	Command string            `json:"Command"`
	Created int64             `json:"Created"` // epoch seconds
	State   string            `json:"State"`   // running, exited, etc.
	Status  string            `json:"Status"`
	Labels  map[string]string `json:"Labels"`
}

// Container states counted by the summary view.
const (
	StateRunning = "running"
	StateExited  = "exited"
	StatePaused  = "paused"
)

// NormalizeContainerName strips exactly one leading "/" from a name as
// returned by list queries. Get-by-name lookups reject the prefixed form.
func NormalizeContainerName(name string) string {
	return strings.TrimPrefix(name, "/")
}

// DisplayName returns the first name without its leading separator.
func (c Container) DisplayName() string {
	if len(c.Names) == 0 {
		return ""
	}
	return NormalizeContainerName(c.Names[0])
}

// ContainerAction is a lifecycle operation that can be dispatched on a
// container by name.
type ContainerAction string

const (
	ActionStart   ContainerAction = "start"
	ActionStop    ContainerAction = "stop"
	ActionRestart ContainerAction = "restart"
	ActionRemove  ContainerAction = "remove"
)

var pastTense = map[ContainerAction]string{
	ActionStart:   "started",
	ActionStop:    "stopped",
	ActionRestart: "restarted",
	ActionRemove:  "removed",
}

// ParseContainerAction reports whether s names an allowed action.
func ParseContainerAction(s string) (ContainerAction, bool) {
	a := ContainerAction(s)
	_, ok := pastTense[a]
	return a, ok
}

// PastTense is used in success messages ("Container web stopped successfully").
func (a ContainerAction) PastTense() string {
	return pastTense[a]
}
