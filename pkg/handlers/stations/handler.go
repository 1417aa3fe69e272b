package stations

import (
	"net/http"
	"strconv"

	"github.com/de-tools/tenant-atlas/pkg/adapters"
	"github.com/de-tools/tenant-atlas/pkg/handlers"
	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/services/listing"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	explorer listing.Explorer
}

func NewHandler(explorer listing.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.explorer.ListStations(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	response := make([]api.Station, 0, len(stations))
	for _, st := range stations {
		response = append(response, adapters.MapStationDomainToApi(st))
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}

// GetStation returns the station, the tenants near it and its map descriptor.
func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "station")

	overview, err := h.explorer.StationOverview(r.Context(), name)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapStationOverviewDomainToApi(overview))
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.explorer.ListTenants(r.Context(), r.URL.Query().Get("station"))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapTenantsDomainToApi(tenants))
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.BadRequest(w, r, "tenant id must be an integer")
		return
	}

	tenant, err := h.explorer.GetTenant(r.Context(), id)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapTenantDomainToApi(tenant))
}
