package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/congram/internal/renderer/core"
)

// Errors returned by tree operations.
var (
	// ErrOutOfBounds indicates a child does not fit inside its parent.
	ErrOutOfBounds = errors.New("child out of parent bounds")

	// ErrNegativeSize indicates a node with a negative dimension.
	ErrNegativeSize = errors.New("negative node size")

	// ErrNilNode indicates a nil child.
	ErrNilNode = errors.New("nil node")

	// ErrAlreadyAttached indicates a node that already has a parent,
	// or an attempt to add a node to itself.
	ErrAlreadyAttached = errors.New("node already attached")

	// ErrCycle indicates a node added beneath one of its own descendants.
	ErrCycle = errors.New("node is an ancestor of its parent")
)

// PlacementError reports a rejected AddChild call.
// The parent is left unchanged.
type PlacementError struct {
	ChildID    uuid.UUID
	ChildPos   core.Vector2
	ChildSize  core.Vector2
	ParentID   uuid.UUID
	ParentSize core.Vector2
	Err        error
}

func newPlacementError(parent, child *Node, err error) *PlacementError {
	pe := &PlacementError{
		ParentID:   parent.ID,
		ParentSize: parent.Size,
		Err:        err,
	}
	if child != nil {
		pe.ChildID = child.ID
		pe.ChildPos = child.Pos
		pe.ChildSize = child.Size
	}
	return pe
}

// Error implements the error interface.
func (e *PlacementError) Error() string {
	return fmt.Sprintf("place node %s at %v size %v in parent %s size %v: %v",
		shortID(e.ChildID), e.ChildPos, e.ChildSize, shortID(e.ParentID), e.ParentSize, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PlacementError) Unwrap() error {
	return e.Err
}

func shortID(id uuid.UUID) string {
	if id == uuid.Nil {
		return "<nil>"
	}
	return id.String()[:8]
}
