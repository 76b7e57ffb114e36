package catalog

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/glowbooth/media-export/common/rcontext"
)

// Source is the remote object catalog the export pipeline consumes. How the
// descriptors got there (uploads, booth sessions, etc) is not our problem.
type Source interface {
	List(ctx rcontext.RequestContext) ([]MediaDescriptor, error)
}

const listCacheKey = "catalog_listing"

type CachedSource struct {
	inner Source
	cache *cache.Cache
}

// NewCachedSource keeps listings around for a short window so repeated admin
// page loads don't re-list the whole bucket.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

func (s *CachedSource) List(ctx rcontext.RequestContext) ([]MediaDescriptor, error) {
	if val, ok := s.cache.Get(listCacheKey); ok {
		return val.([]MediaDescriptor), nil
	}
	listing, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, listing, cache.DefaultExpiration)
	return listing, nil
}

func (s *CachedSource) Invalidate() {
	s.cache.Delete(listCacheKey)
}

// FilterByIds resolves a selection against a listing, preserving listing
// order. Unknown ids are ignored downstream rather than erroring.
func FilterByIds(listing []MediaDescriptor, ids []string) []MediaDescriptor {
	if ids == nil {
		return listing
	}
	wanted := make(map[string]bool)
	for _, id := range ids {
		wanted[id] = true
	}
	filtered := make([]MediaDescriptor, 0)
	for _, d := range listing {
		if wanted[d.Id] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
