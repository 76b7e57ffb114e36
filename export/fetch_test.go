package export

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbooth/media-export/catalog"
)

func makeTargets(n int, baseUrl string) []catalog.MediaDescriptor {
	targets := make([]catalog.MediaDescriptor, 0, n)
	for i := 0; i < n; i++ {
		targets = append(targets, catalog.MediaDescriptor{
			Id:          fmt.Sprintf("media-%d", i),
			DisplayName: fmt.Sprintf("photo-%d.jpg", i),
			ContentUrl:  fmt.Sprintf("%s/media-%d", baseUrl, i),
		})
	}
	return targets
}

func TestChunkDescriptors_Invariant(t *testing.T) {
	for _, tc := range []struct {
		n, size, chunks int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 3, 4},
		{7, 1, 7},
	} {
		targets := makeTargets(tc.n, "http://localhost")
		chunks := chunkDescriptors(targets, tc.size)
		assert.Len(t, chunks, tc.chunks, "n=%d size=%d", tc.n, tc.size)

		flattened := make([]catalog.MediaDescriptor, 0)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), tc.size)
			flattened = append(flattened, chunk...)
		}
		assert.Equal(t, targets, flattened)
	}
}

func TestFetchAll_EmptyTargetsMakesNoRequests(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	f := NewFetcher(5, 0)
	calls := 0
	err := f.FetchAll(testContext(), []catalog.MediaDescriptor{}, func(res FetchResult) {
		calls++
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
}

func TestFetchAll_PartialFailureDoesNotAbort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "media-2") {
			w.WriteHeader(http.StatusForbidden) // expired signed url
			return
		}
		_, _ = w.Write([]byte("contents of " + r.URL.Path))
	}))
	defer server.Close()

	targets := makeTargets(6, server.URL)
	f := NewFetcher(2, 0)

	succeeded := 0
	failed := 0
	err := f.FetchAll(testContext(), targets, func(res FetchResult) {
		if res.Ok() {
			succeeded++
			assert.NotEmpty(t, res.Body)
		} else {
			failed++
			assert.Equal(t, "media-2", res.Target.Id)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 1, failed)
}

func TestFetchAll_ChunkOrderingPreserved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	targets := makeTargets(5, server.URL)
	f := NewFetcher(2, 0)

	settledOrder := make([]string, 0)
	err := f.FetchAll(testContext(), targets, func(res FetchResult) {
		settledOrder = append(settledOrder, res.Target.Id)
	})
	require.NoError(t, err)
	require.Len(t, settledOrder, 5)

	// Within a chunk order is unspecified, but chunk N settles before N+1
	chunkOf := map[string]int{"media-0": 0, "media-1": 0, "media-2": 1, "media-3": 1, "media-4": 2}
	lastChunk := 0
	for _, id := range settledOrder {
		assert.GreaterOrEqual(t, chunkOf[id], lastChunk)
		lastChunk = chunkOf[id]
	}
}

func TestFetchAll_CancelledContextStopsBeforeNextChunk(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	cancelled, cancel := context.WithCancel(context.Background())
	ctx := testContext().ReplaceContext(cancelled)

	targets := makeTargets(6, server.URL)
	f := NewFetcher(3, 0)

	calls := 0
	err := f.FetchAll(ctx, targets, func(res FetchResult) {
		calls++
		cancel() // cancel while the first chunk is settling
	})
	assert.ErrorIs(t, err, context.Canceled)
	// every item of the first chunk settles, the second chunk never starts
	assert.Equal(t, 3, calls)
	assert.LessOrEqual(t, atomic.LoadInt32(&requests), int32(3))
}

func TestFetchAll_MissingUrlIsAFailureResult(t *testing.T) {
	f := NewFetcher(5, 0)
	targets := []catalog.MediaDescriptor{{Id: "x", DisplayName: "x.jpg", ContentUrl: ""}}

	results := make([]FetchResult, 0)
	err := f.FetchAll(testContext(), targets, func(res FetchResult) {
		results = append(results, res)
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Ok())
}

func TestFetchAll_OversizedItemIsAFailureResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	f := NewFetcher(5, 1024)
	targets := makeTargets(1, server.URL)

	results := make([]FetchResult, 0)
	err := f.FetchAll(testContext(), targets, func(res FetchResult) {
		results = append(results, res)
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Ok())
	assert.Contains(t, results[0].Err.Error(), "maximum size")
}
