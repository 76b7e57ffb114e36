package export

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/rcontext"
)

const compressionLevel = 6

// ArchiveBuilder assembles the export zip in memory. Entries with clashing
// display names are de-duplicated by suffixing " (n)" before the extension
// rather than silently overwriting earlier entries.
type ArchiveBuilder struct {
	buf     *bytes.Buffer
	zw      *zip.Writer
	names   map[string]int
	entries int
	sealed  bool
}

func NewArchiveBuilder() *ArchiveBuilder {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, compressionLevel)
	})
	return &ArchiveBuilder{
		buf:   buf,
		zw:    zw,
		names: make(map[string]int),
	}
}

func (b *ArchiveBuilder) Add(ctx rcontext.RequestContext, name string, data []byte) error {
	if b.sealed {
		return fmt.Errorf("archive already sealed")
	}

	entryName := b.entryName(name, data)
	header := &zip.FileHeader{
		Name:   entryName,
		Method: zip.Deflate,
	}
	w, err := b.zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return err
	}

	ctx.Log.Debugf("Archived %s (%d bytes)", entryName, len(data))
	b.entries++
	return nil
}

func (b *ArchiveBuilder) Entries() int {
	return b.entries
}

// Seal closes the archive and returns the finished blob. Sealing an archive
// with zero entries is an error: an empty zip is never useful to a user.
func (b *ArchiveBuilder) Seal() (*bytes.Reader, int64, error) {
	if b.entries == 0 {
		return nil, 0, common.ErrNothingToExport
	}
	if err := b.zw.Close(); err != nil {
		return nil, 0, err
	}
	b.sealed = true
	return bytes.NewReader(b.buf.Bytes()), int64(b.buf.Len()), nil
}

// entryName normalizes a display name into a unique archive entry name,
// inferring an extension from the content when the name has none.
func (b *ArchiveBuilder) entryName(name string, data []byte) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "unnamed"
	}
	if path.Ext(name) == "" {
		name += mimetype.Detect(data).Extension()
	}

	seen := b.names[name]
	b.names[name] = seen + 1
	if seen == 0 {
		return name
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := fmt.Sprintf("%s (%d)%s", base, seen, ext)
	for b.names[candidate] > 0 {
		seen++
		b.names[name] = seen + 1
		candidate = fmt.Sprintf("%s (%d)%s", base, seen, ext)
	}
	b.names[candidate] = 1
	return candidate
}
