package export

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/metrics"
)

// FetchResult is the typed per-item outcome of a fetch. Failures are data,
// not control flow: they get aggregated into the job summary instead of
// aborting anything.
type FetchResult struct {
	Target catalog.MediaDescriptor
	Body   []byte
	Err    error
}

func (r FetchResult) Ok() bool {
	return r.Err == nil
}

type Fetcher struct {
	client       *http.Client
	batchSize    int
	maxItemBytes int64
}

// NewFetcher builds a fetcher that processes targets in consecutive chunks of
// batchSize, with all fetches inside a chunk running concurrently. Chunk N+1
// does not start until every fetch in chunk N has settled. maxItemBytes of 0
// means unlimited.
func NewFetcher(batchSize int, maxItemBytes int64) *Fetcher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Fetcher{
		client:       &http.Client{Timeout: 2 * time.Minute},
		batchSize:    batchSize,
		maxItemBytes: maxItemBytes,
	}
}

// FetchAll fetches every target and invokes each exactly once per target,
// from the calling goroutine, as results settle. The only error returned is
// a context cancellation between chunks; everything per-item lands in the
// FetchResult.
func (f *Fetcher) FetchAll(ctx rcontext.RequestContext, targets []catalog.MediaDescriptor, each func(FetchResult)) error {
	for _, chunk := range chunkDescriptors(targets, f.batchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}

		results := make(chan FetchResult, len(chunk))
		for _, target := range chunk {
			go func(target catalog.MediaDescriptor) {
				results <- f.fetchOne(ctx, target)
			}(target)
		}
		for range chunk {
			res := <-results
			if res.Ok() {
				metrics.ExportItemsFetched.With(map[string]string{"result": "success"}).Inc()
			} else {
				metrics.ExportItemsFetched.With(map[string]string{"result": "failure"}).Inc()
				ctx.Log.Warnf("Failed to fetch %s (%s): %s", res.Target.Id, res.Target.DisplayName, res.Err)
			}
			each(res)
		}
	}
	return nil
}

func (f *Fetcher) fetchOne(ctx rcontext.RequestContext, target catalog.MediaDescriptor) FetchResult {
	if target.ContentUrl == "" {
		return FetchResult{Target: target, Err: errors.New("descriptor has no content url")}
	}

	req, err := http.NewRequestWithContext(ctx.Context, http.MethodGet, target.ContentUrl, nil)
	if err != nil {
		return FetchResult{Target: target, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{Target: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Expired signed URLs surface as 403s here - same handling either way
		return FetchResult{Target: target, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	reader := io.Reader(resp.Body)
	if f.maxItemBytes > 0 {
		reader = io.LimitReader(resp.Body, f.maxItemBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return FetchResult{Target: target, Err: err}
	}
	if f.maxItemBytes > 0 && int64(len(body)) > f.maxItemBytes {
		return FetchResult{Target: target, Err: fmt.Errorf("item exceeds maximum size of %d bytes", f.maxItemBytes)}
	}

	return FetchResult{Target: target, Body: body}
}

func chunkDescriptors(targets []catalog.MediaDescriptor, size int) [][]catalog.MediaDescriptor {
	chunks := make([][]catalog.MediaDescriptor, 0)
	for i := 0; i < len(targets); i += size {
		end := i + size
		if end > len(targets) {
			end = len(targets)
		}
		chunks = append(chunks, targets[i:end])
	}
	return chunks
}
