package ui

// MenuItem represents a single row in a List.
//
// Rows still loading are not drawn. Failed rows are drawn dimmed and cannot
// be selected.
type MenuItem struct {
	Text     string        // Display text for the row
	Status   ContentStatus // Load state of the row
	ImageURL string        // Thumbnail shown next to the text, if any
	Metadata any           // Application-specific data attached to the row
}

// ListResult is the return value of List.
type ListResult struct {
	Action       ListAction
	Selected     int      // Index into the items of the last snapshot
	Item         MenuItem // The selected item
	VisibleStart int      // First row on screen, for scroll restoration
}
