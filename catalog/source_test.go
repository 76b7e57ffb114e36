package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/common/rcontext"
)

func testContext() rcontext.RequestContext {
	return rcontext.RequestContext{
		Context: context.Background(),
		Log:     logrus.WithField("test", true),
		Config:  config.NewDefaultServiceConfig(),
	}
}

type countingSource struct {
	lists   int
	listing []MediaDescriptor
	err     error
}

func (s *countingSource) List(ctx rcontext.RequestContext) ([]MediaDescriptor, error) {
	s.lists++
	return s.listing, s.err
}

func TestCachedSource_ListsInnerOnce(t *testing.T) {
	inner := &countingSource{listing: []MediaDescriptor{{Id: "a"}, {Id: "b"}}}
	source := NewCachedSource(inner, 1*time.Minute)

	for i := 0; i < 3; i++ {
		listing, err := source.List(testContext())
		require.NoError(t, err)
		assert.Len(t, listing, 2)
	}
	assert.Equal(t, 1, inner.lists)
}

func TestCachedSource_InvalidateForcesRelist(t *testing.T) {
	inner := &countingSource{listing: []MediaDescriptor{{Id: "a"}}}
	source := NewCachedSource(inner, 1*time.Minute)

	_, err := source.List(testContext())
	require.NoError(t, err)

	source.Invalidate()
	_, err = source.List(testContext())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.lists)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	inner := &countingSource{err: errors.New("bucket unavailable")}
	source := NewCachedSource(inner, 1*time.Minute)

	_, err := source.List(testContext())
	assert.Error(t, err)

	inner.err = nil
	inner.listing = []MediaDescriptor{{Id: "a"}}
	listing, err := source.List(testContext())
	require.NoError(t, err)
	assert.Len(t, listing, 1)
	assert.Equal(t, 2, inner.lists)
}

func TestFilterByIds(t *testing.T) {
	listing := []MediaDescriptor{{Id: "a"}, {Id: "b"}, {Id: "c"}}

	t.Run("nil means everything", func(t *testing.T) {
		assert.Equal(t, listing, FilterByIds(listing, nil))
	})

	t.Run("preserves listing order", func(t *testing.T) {
		filtered := FilterByIds(listing, []string{"c", "a"})
		require.Len(t, filtered, 2)
		assert.Equal(t, "a", filtered[0].Id)
		assert.Equal(t, "c", filtered[1].Id)
	})

	t.Run("unknown ids are dropped", func(t *testing.T) {
		filtered := FilterByIds(listing, []string{"b", "nope"})
		require.Len(t, filtered, 1)
		assert.Equal(t, "b", filtered[0].Id)
	})

	t.Run("empty but non-nil selects nothing", func(t *testing.T) {
		assert.Empty(t, FilterByIds(listing, []string{}))
	})
}
