package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"

	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/database"
	"github.com/glowbooth/media-export/export"
	"github.com/glowbooth/media-export/sinks"
	"github.com/glowbooth/media-export/util"
)

type LeadModel struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"name"`
	Source    string `json:"source"`
	EventName string `json:"event"`
	CreatedTs int64  `json:"created_ts"`
}

type LeadListResponse struct {
	Leads []*LeadModel `json:"leads"`
}

type createLeadRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"name"`
	Source    string `json:"source"`
	EventName string `json:"event"`
}

var leadCsvColumns = []export.CsvColumn{
	{Header: "Email", Field: "email"},
	{Header: "Name", Field: "name"},
	{Header: "Source", Field: "source"},
	{Header: "Event", Field: "event"},
	{Header: "Created At", Field: "created_at"},
}

func (rt *Routes) ListLeads(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	leads, err := rt.queryLeads(ctx, r.URL.Query().Get("source"))
	if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error listing leads: ", err)
		return InternalServerError("error listing leads")
	}

	models := make([]*LeadModel, 0, len(leads))
	for _, lead := range leads {
		models = append(models, &LeadModel{
			Id:        lead.Id,
			Email:     lead.Email,
			FullName:  lead.FullName,
			Source:    lead.Source,
			EventName: lead.EventName,
			CreatedTs: lead.CreatedTs,
		})
	}
	return &LeadListResponse{Leads: models}
}

func (rt *Routes) CreateLead(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	req := &createLeadRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil || req.Email == "" {
		return BadRequest("expected a json body with an email")
	}

	id, err := util.GenerateRandomString(8)
	if err != nil {
		return InternalServerError("error generating lead id")
	}
	lead := &database.DbLead{
		Id:        id,
		Email:     req.Email,
		FullName:  req.FullName,
		Source:    req.Source,
		EventName: req.EventName,
		CreatedTs: util.NowMillis(),
	}
	if err := rt.db.Leads.Prepare(ctx).Insert(lead); err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error inserting lead: ", err)
		return InternalServerError("error saving lead")
	}

	return &LeadModel{
		Id:        lead.Id,
		Email:     lead.Email,
		FullName:  lead.FullName,
		Source:    lead.Source,
		EventName: lead.EventName,
		CreatedTs: lead.CreatedTs,
	}
}

func (rt *Routes) DeleteLead(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	leadId := mux.Vars(r)["leadId"]
	if leadId == "" {
		return BadRequest("expected a lead id")
	}

	err := rt.db.Leads.Prepare(ctx).Delete(leadId)
	if errors.Is(err, common.ErrNotFound) {
		return NotFoundError()
	} else if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error deleting lead: ", err)
		return InternalServerError("error deleting lead")
	}

	return &EmptyResponse{}
}

// ExportLeads streams the leads table as a CSV attachment, filtered by
// ?source= when given.
func (rt *Routes) ExportLeads(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{} {
	leads, err := rt.queryLeads(ctx, r.URL.Query().Get("source"))
	if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error listing leads: ", err)
		return InternalServerError("error listing leads")
	}

	rows := make([]export.CsvRow, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, export.CsvRow{
			"email":      lead.Email,
			"name":       lead.FullName,
			"source":     lead.Source,
			"event":      lead.EventName,
			"created_at": util.FromMillis(lead.CreatedTs).UTC().Format(time.RFC3339),
		})
	}

	sink := sinks.NewResponseSink(w, "text/csv; charset=utf-8")
	_, err = export.DeliverCsv(ctx, leadCsvColumns, rows, sink, "leads")
	if errors.Is(err, common.ErrNothingToExport) {
		return NothingToExport()
	} else if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("error exporting leads: ", err)
		return InternalServerError("error exporting leads")
	}

	return &StreamedResponse{}
}

func (rt *Routes) queryLeads(ctx rcontext.RequestContext, source string) ([]*database.DbLead, error) {
	table := rt.db.Leads.Prepare(ctx)
	if source != "" {
		return table.GetBySource(source)
	}
	return table.GetAll()
}
