package flatspatial

import (
	"errors"
	"fmt"
)

// ErrInvalidCellSize is returned by the grid constructors when the cell
// size is not strictly positive.
var ErrInvalidCellSize = errors.New("cell size must be positive")

// InvalidHandleError indicates a stale, unknown or already-removed
// handle. It is returned by Get, GetMut, Remove, SetPosition, SetAABB
// and SetShape; none of them panic for this condition.
type InvalidHandleError struct {
	Handle Handle
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid handle: %s", e.Handle)
}

// IsInvalidHandle reports whether err is an InvalidHandleError.
func IsInvalidHandle(err error) bool {
	var ih *InvalidHandleError
	return errors.As(err, &ih)
}
