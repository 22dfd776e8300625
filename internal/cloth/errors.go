package cloth

import "errors"

// Construction errors. These are programmer/operator mistakes and are
// reported before any simulation state exists.
var (
	// ErrGridSize indicates a grid too small to carry constraints.
	ErrGridSize = errors.New("cloth: grid must be at least 2x2")

	// ErrSpacing indicates a non-positive particle spacing.
	ErrSpacing = errors.New("cloth: spacing must be positive")
)
