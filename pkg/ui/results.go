package ui

// ListAction represents how the user left a List.
type ListAction int

const (
	ListActionSelected ListAction = iota // A on a loaded row
	ListActionMenu                       // Menu, jump to the home screen
)

// DetailAction represents how the user left a DetailScreen.
type DetailAction int

const (
	DetailActionNone   DetailAction = iota // Still open
	DetailActionBack                       // B
	DetailActionMenu                       // Menu, jump to the home screen
	DetailActionQuit                       // Window closed
)

// ContentStatus is the load state of a screen or of a single row.
type ContentStatus int

const (
	ContentLoading ContentStatus = iota
	ContentReady
	ContentFailed
)

func (s ContentStatus) String() string {
	switch s {
	case ContentLoading:
		return "loading"
	case ContentReady:
		return "ready"
	case ContentFailed:
		return "failed"
	default:
		return "unknown"
	}
}
