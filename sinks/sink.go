package sinks

import (
	"io"

	"github.com/glowbooth/media-export/common/rcontext"
)

// Handle is a transient reference to an in-progress delivery. Callers must
// write the contents, Commit on success, and Release exactly once on every
// path. Release after Commit is a no-op; Release without Commit discards
// whatever was staged.
type Handle interface {
	io.Writer
	Commit() error
	Release() error
}

// Sink is the host environment's "present this blob to the user as a file"
// mechanism. The export pipeline treats it as an opaque destination.
type Sink interface {
	Open(ctx rcontext.RequestContext, fileName string) (Handle, error)
}
