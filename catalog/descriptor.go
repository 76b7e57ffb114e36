package catalog

import (
	"github.com/glowbooth/media-export/common"
)

// MediaDescriptor describes one remote object without its content. The
// ContentUrl is a time-limited signed URL and must be treated as fallible:
// it can expire between listing and fetching.
type MediaDescriptor struct {
	Id          string   `json:"id"`
	DisplayName string   `json:"name"`
	ContentUrl  string   `json:"url"`
	Kind        string   `json:"kind"`
	ContentType string   `json:"content_type"`
	SizeBytes   int64    `json:"size"`
	Tags        []string `json:"tags,omitempty"`
	CreatedTs   int64    `json:"created_ts"`
}

func (d MediaDescriptor) IsPlayable() bool {
	return d.Kind == common.KindVideo
}
