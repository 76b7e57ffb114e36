package common

import (
	"strings"
)

const KindImage = "image"
const KindVideo = "video"
const KindOther = "other"

var AllKinds = []string{KindImage, KindVideo, KindOther}

func KindForContentType(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return KindImage
	}
	if strings.HasPrefix(contentType, "video/") {
		return KindVideo
	}
	return KindOther
}
