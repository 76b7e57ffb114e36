package sinks

import (
	"os"
	"path/filepath"

	"github.com/glowbooth/media-export/common/rcontext"
)

// DiskSink delivers exports into a local directory. Contents are staged to a
// temp file in the same directory and renamed into place on Commit so a
// half-written archive is never visible under its final name.
type DiskSink struct {
	Dir string
}

func NewDiskSink(dir string) *DiskSink {
	return &DiskSink{Dir: dir}
}

func (s *DiskSink) Open(ctx rcontext.RequestContext, fileName string) (Handle, error) {
	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(s.Dir, ".export-stage-*")
	if err != nil {
		return nil, err
	}
	ctx.Log.Debugf("Staging %s at %s", fileName, f.Name())
	return &diskHandle{
		f:         f,
		finalPath: filepath.Join(s.Dir, fileName),
	}, nil
}

type diskHandle struct {
	f         *os.File
	finalPath string
	committed bool
	released  bool
}

func (h *diskHandle) Write(p []byte) (int, error) {
	return h.f.Write(p)
}

func (h *diskHandle) Commit() error {
	if err := h.f.Close(); err != nil {
		return err
	}
	if err := os.Rename(h.f.Name(), h.finalPath); err != nil {
		return err
	}
	h.committed = true
	return nil
}

func (h *diskHandle) Release() error {
	if h.released {
		return nil
	}
	h.released = true
	if h.committed {
		return nil
	}

	closeErr := h.f.Close()
	if err := os.Remove(h.f.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return closeErr
}
