package adapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
)

// MapStoreStationToDomain parses the textual coordinates of a station row.
func MapStoreStationToDomain(st store.Station) (domain.Station, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(st.Lat), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("station %q has invalid latitude %q: %w", st.Name, st.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(st.Lon), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("station %q has invalid longitude %q: %w", st.Name, st.Lon, err)
	}
	return domain.Station{
		ID:      st.ID,
		Name:    st.Name,
		Address: st.Address,
		Lat:     lat,
		Lon:     lon,
	}, nil
}

func MapStoreTenantToDomain(t store.Tenant) domain.Tenant {
	return domain.Tenant{
		ID:          t.ID,
		Address:     t.Address,
		Price:       t.Price,
		Floor:       t.Floor,
		StationName: t.StationName,
		DetailURL:   t.DetailURL,
		ImageURL:    t.ImageURL,
		Shikikin:    t.Shikikin,
		Reikin:      t.Reikin,
		Hoshokin:    t.Hoshokin,
		Kaiyakukin:  t.Kaiyakukin,
	}
}

func MapStationDomainToApi(st domain.Station) api.Station {
	return api.Station{
		ID:      st.ID,
		Name:    st.Name,
		Address: st.Address,
		Lat:     st.Lat,
		Lon:     st.Lon,
	}
}

func MapTenantDomainToApi(t domain.Tenant) api.Tenant {
	return api.Tenant{
		ID:          t.ID,
		Address:     t.Address,
		MonthlyRent: t.Price,
		Floor:       t.Floor,
		StationName: t.StationName,
		DetailURL:   t.DetailURL,
		ImageURL:    t.ImageURL,
		Deposit:     t.Shikikin,
		KeyMoney:    t.Reikin,
		Guarantee:   t.Hoshokin,
		Cancelation: t.Kaiyakukin,
	}
}

func MapTenantsDomainToApi(tenants []domain.Tenant) []api.Tenant {
	res := make([]api.Tenant, 0, len(tenants))
	for _, t := range tenants {
		res = append(res, MapTenantDomainToApi(t))
	}
	return res
}

func mapLatLon(p domain.LatLon) api.LatLon {
	return api.LatLon{Lat: p.Lat, Lon: p.Lon}
}

func MapMapViewDomainToApi(m domain.MapView) api.MapView {
	res := api.MapView{
		Center:  mapLatLon(m.Center),
		Zoom:    m.Zoom,
		Tiles:   m.Tiles,
		Circles: make([]api.MapCircle, 0, len(m.Circles)),
		Markers: make([]api.MapMarker, 0, len(m.Markers)),
	}
	for _, c := range m.Circles {
		res.Circles = append(res.Circles, api.MapCircle{
			Center:       mapLatLon(c.Center),
			RadiusMeters: c.RadiusMeters,
			Color:        c.Color,
			FillColor:    c.FillColor,
		})
	}
	for _, mk := range m.Markers {
		res.Markers = append(res.Markers, api.MapMarker{
			Position: mapLatLon(mk.Position),
			Popup:    mk.Popup,
		})
	}
	return res
}

func MapStationOverviewDomainToApi(o domain.StationOverview) api.StationOverview {
	return api.StationOverview{
		Station: MapStationDomainToApi(o.Station),
		Tenants: MapTenantsDomainToApi(o.Tenants),
		Map:     MapMapViewDomainToApi(o.Map),
	}
}
