package adapter

// EventKind identifies what happened in the host.
type EventKind int

// Host events the adapter reacts to.
const (
	// EventTextChanged fires after the document text changed.
	EventTextChanged EventKind = iota

	// EventSelectionChanged fires after the cursor or selection moved.
	EventSelectionChanged

	// EventEditorChanged fires when another document became active.
	EventEditorChanged
)

func (k EventKind) String() string {
	switch k {
	case EventTextChanged:
		return "text-changed"
	case EventSelectionChanged:
		return "selection-changed"
	case EventEditorChanged:
		return "editor-changed"
	default:
		return "unknown"
	}
}

// Source identifies what moved the selection.
type Source int

// Selection sources.
const (
	SourceUnknown Source = iota
	SourceKeyboard
	SourceMouse
	SourceCommand
)

// Event is a host notification.
type Event struct {
	Kind EventKind

	// Source is set for EventSelectionChanged.
	Source Source
}

// relevant reports whether the event should trigger a refresh. Selection
// changes made by commands, including the adapter's own cursor restore, are
// ignored.
func (e Event) relevant() bool {
	if e.Kind != EventSelectionChanged {
		return true
	}
	return e.Source == SourceKeyboard || e.Source == SourceMouse
}

// Commands understood by Adapter.Execute.
const (
	CommandEnable  = "linewidth.enable"
	CommandDisable = "linewidth.disable"
	CommandToggle  = "linewidth.toggle"
	CommandRefresh = "linewidth.refresh"
)

// Commands returns the command identifiers in registration order.
func Commands() []string {
	return []string{CommandEnable, CommandDisable, CommandToggle, CommandRefresh}
}
