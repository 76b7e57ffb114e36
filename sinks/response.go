package sinks

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/alioygur/is"

	"github.com/glowbooth/media-export/common/rcontext"
)

// ResponseSink streams a delivery straight to an HTTP response as an
// attachment. One sink per response; Open may only be called once.
type ResponseSink struct {
	w           http.ResponseWriter
	contentType string
	opened      bool
}

func NewResponseSink(w http.ResponseWriter, contentType string) *ResponseSink {
	return &ResponseSink{w: w, contentType: contentType}
}

func (s *ResponseSink) Open(ctx rcontext.RequestContext, fileName string) (Handle, error) {
	if s.opened {
		return nil, fmt.Errorf("response sink already opened")
	}
	s.opened = true
	s.w.Header().Set("Content-Type", s.contentType)
	if is.ASCII(fileName) {
		s.w.Header().Set("Content-Disposition", "attachment; filename="+url.QueryEscape(fileName))
	} else {
		s.w.Header().Set("Content-Disposition", "attachment; filename*=utf-8''"+url.QueryEscape(fileName))
	}
	return &responseHandle{w: s.w}, nil
}

type responseHandle struct {
	w http.ResponseWriter
}

func (h *responseHandle) Write(p []byte) (int, error) {
	return h.w.Write(p)
}

func (h *responseHandle) Commit() error {
	return nil
}

func (h *responseHandle) Release() error {
	return nil
}
