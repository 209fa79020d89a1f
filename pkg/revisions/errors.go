package revisions

import "errors"

var (
	// ErrNoVisibleValue is returned by Get when no segment on the ambient
	// revision's ancestor chain holds a value for the cell. The usual cause
	// is reading a cell that was created inside a sibling branch.
	ErrNoVisibleValue = errors.New("revisions: no visible value for cell")

	// ErrAlreadyJoined is returned when a revision is joined a second time.
	ErrAlreadyJoined = errors.New("revisions: revision already joined")

	// ErrNotJoinable is returned when joining a revision that was not
	// produced by Fork, such as a root revision.
	ErrNotJoinable = errors.New("revisions: revision is not joinable")

	// ErrNotRoot is returned by Close on a forked revision; forked
	// revisions are finished with Join instead.
	ErrNotRoot = errors.New("revisions: only root revisions are closed directly")
)
