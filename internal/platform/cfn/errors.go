package cfn

import "errors"

var (
	// ErrDuplicatePath is returned when a resource is declared twice at the same construct path.
	ErrDuplicatePath = errors.New("duplicate construct path")

	// ErrUnmatchedPath is returned when a suppression targets a path with no resources.
	ErrUnmatchedPath = errors.New("no resource at construct path")

	// ErrUnknownRepository is returned when a handle does not belong to this stack.
	ErrUnknownRepository = errors.New("unknown repository")

	// ErrInvalidArgument is returned for collaborator arguments the engine cannot synthesize.
	ErrInvalidArgument = errors.New("invalid argument")
)
