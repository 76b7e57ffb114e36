package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"

	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/export"
	"github.com/glowbooth/media-export/sinks"
)

type exportMediaRequest struct {
	Ids   []string `json:"ids"`
	All   bool     `json:"all"`
	Topic string   `json:"topic"`
}

// ExportMedia runs a bulk export and streams the resulting zip back as an
// attachment. The summary travels in X-Export-* headers because the body is
// the archive itself.
func (rt *Routes) ExportMedia(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	req := &exportMediaRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return BadRequest("expected a json body")
	}
	if req.Topic == "" {
		req.Topic = "media"
	}

	listing, err := rt.source.List(ctx)
	if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error listing catalog: ", err)
		return InternalServerError("error listing media")
	}
	rt.selection.Prune(descriptorIds(listing))

	var targets []catalog.MediaDescriptor
	if req.All {
		targets = listing
	} else if req.Ids != nil {
		targets = catalog.FilterByIds(listing, req.Ids)
	} else {
		targets = catalog.FilterByIds(listing, rt.selection.Ids())
	}

	sink := sinks.NewResponseSink(w, "application/zip")
	summaryHeaders := func(summary *export.Summary) {
		w.Header().Set("X-Export-Total", strconv.Itoa(summary.Total))
		w.Header().Set("X-Export-Succeeded", strconv.Itoa(summary.Succeeded))
	}

	summary, err := export.RunJob(ctx, targets, rt.fetcher, sink, export.JobOpts{
		Topic:           req.Topic,
		OnBeforeDeliver: summaryHeaders,
	})
	if errors.Is(err, common.ErrNothingToExport) {
		return NothingToExport()
	} else if errors.Is(err, common.ErrAllItemsFailed) {
		return ExportFailed(fmt.Sprintf("all %d items failed to export", len(targets)))
	} else if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error running export: ", err)
		return InternalServerError("error running export")
	}

	// A successful bulk export resets the selection
	rt.selection.Clear()

	ctx.Log.Infof("Export complete: %d of %d items delivered as %s", summary.Succeeded, summary.Total, summary.FileName)
	return &StreamedResponse{}
}
