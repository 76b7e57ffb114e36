package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/database"
	"github.com/glowbooth/media-export/export"
)

// Routes holds the collaborators handlers need. They are injected here once
// instead of being read from globals so the API surface stays testable.
type Routes struct {
	source    catalog.Source
	fetcher   *export.Fetcher
	selection *export.SelectionSet
	db        *database.Database
}

func NewRoutes(source catalog.Source, fetcher *export.Fetcher, db *database.Database) *Routes {
	return &Routes{
		source:    source,
		fetcher:   fetcher,
		selection: export.NewSelectionSet(),
		db:        db,
	}
}

func buildRoutes(rt *Routes) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFoundFn)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedFn)

	router.Handle("/healthz", handler{rt.Health, "health"}).Methods("GET")
	router.Handle("/v1/media", handler{rt.ListMedia, "list_media"}).Methods("GET")
	router.Handle("/v1/selection", handler{rt.GetSelection, "get_selection"}).Methods("GET")
	router.Handle("/v1/selection/toggle", handler{rt.ToggleSelection, "toggle_selection"}).Methods("POST")
	router.Handle("/v1/selection/select_all", handler{rt.SelectAllVisible, "select_all"}).Methods("POST")
	router.Handle("/v1/selection/clear", handler{rt.ClearSelection, "clear_selection"}).Methods("POST")
	router.Handle("/v1/export/media", handler{rt.ExportMedia, "export_media"}).Methods("POST")
	router.Handle("/v1/leads", handler{rt.ListLeads, "list_leads"}).Methods("GET")
	router.Handle("/v1/leads", handler{rt.CreateLead, "create_lead"}).Methods("POST")
	router.Handle("/v1/leads/{leadId}", handler{rt.DeleteLead, "delete_lead"}).Methods("DELETE")
	router.Handle("/v1/export/leads", handler{rt.ExportLeads, "export_leads"}).Methods("GET")

	return router
}
