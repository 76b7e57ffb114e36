package api

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/common/rcontext"
)

type HealthResponse struct {
	OK bool `json:"ok"`
}

type MediaListResponse struct {
	Media    []catalog.MediaDescriptor `json:"media"`
	Selected []string                  `json:"selected"`
}

type SelectionResponse struct {
	Selected []string `json:"selected"`
}

type toggleRequest struct {
	Id string `json:"id"`
}

type selectAllRequest struct {
	Ids []string `json:"ids"`
}

func (rt *Routes) Health(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	return &HealthResponse{OK: true}
}

func (rt *Routes) ListMedia(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	listing, err := rt.source.List(ctx)
	if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error listing catalog: ", err)
		return InternalServerError("error listing media")
	}

	// Items removed from the catalog must not linger in the selection
	rt.selection.Prune(descriptorIds(listing))

	return &MediaListResponse{Media: listing, Selected: rt.selection.Ids()}
}

func (rt *Routes) GetSelection(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	return &SelectionResponse{Selected: rt.selection.Ids()}
}

func (rt *Routes) ToggleSelection(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	req := &toggleRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil || req.Id == "" {
		return BadRequest("expected a json body with an id")
	}
	rt.selection.Toggle(req.Id)
	return &SelectionResponse{Selected: rt.selection.Ids()}
}

func (rt *Routes) SelectAllVisible(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	req := &selectAllRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return BadRequest("expected a json body with ids")
	}

	visible := req.Ids
	if visible == nil {
		listing, err := rt.source.List(ctx)
		if err != nil {
			sentry.CaptureException(err)
			ctx.Log.Error("error listing catalog: ", err)
			return InternalServerError("error listing media")
		}
		visible = descriptorIds(listing)
	}

	rt.selection.SelectAllVisible(visible)
	return &SelectionResponse{Selected: rt.selection.Ids()}
}

func (rt *Routes) ClearSelection(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	rt.selection.Clear()
	return &SelectionResponse{Selected: []string{}}
}

func descriptorIds(listing []catalog.MediaDescriptor) []string {
	ids := make([]string, 0, len(listing))
	for _, d := range listing {
		ids = append(ids, d.Id)
	}
	return ids
}
