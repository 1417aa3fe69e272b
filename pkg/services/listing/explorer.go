package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/tenant-atlas/pkg/adapters"
	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
	listingstore "github.com/de-tools/tenant-atlas/pkg/store/listing"
)

const (
	defaultMapZoom     = 15
	defaultMapTiles    = "OpenStreetMap"
	surroundingsRadius = 100 // meters
	circleColor        = "#ff0000"
	circleFillColor    = "#0000ff"
)

var ErrStationNotFound = errors.New("station not found")

// Explorer exposes stations and their tenant listings.
type Explorer interface {
	ListStations(ctx context.Context) ([]domain.Station, error)
	StationOverview(ctx context.Context, stationName string) (domain.StationOverview, error)
	ListTenants(ctx context.Context, stationName string) ([]domain.Tenant, error)
	GetTenant(ctx context.Context, id int64) (domain.Tenant, error)
}

type explorer struct {
	store listingstore.Store
}

func NewExplorer(s listingstore.Store) Explorer {
	return &explorer{store: s}
}

func (e *explorer) ListStations(ctx context.Context) ([]domain.Station, error) {
	rows, err := e.store.ListStations(ctx)
	if err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(rows))
	for _, row := range rows {
		st, err := adapters.MapStoreStationToDomain(row)
		if err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, nil
}

func (e *explorer) StationOverview(ctx context.Context, stationName string) (domain.StationOverview, error) {
	row, err := e.store.GetStation(ctx, stationName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.StationOverview{}, fmt.Errorf("%w: %s", ErrStationNotFound, stationName)
		}
		return domain.StationOverview{}, err
	}

	st, err := adapters.MapStoreStationToDomain(row)
	if err != nil {
		return domain.StationOverview{}, err
	}

	tenants, err := e.ListTenants(ctx, st.Name)
	if err != nil {
		return domain.StationOverview{}, err
	}

	return domain.StationOverview{
		Station: st,
		Tenants: tenants,
		Map:     Surroundings(st),
	}, nil
}

// ListTenants returns every tenant, or only those near stationName when it is
// not empty.
func (e *explorer) ListTenants(ctx context.Context, stationName string) ([]domain.Tenant, error) {
	var (
		rows []store.Tenant
		err  error
	)
	if stationName == "" {
		rows, err = e.store.ListTenants(ctx)
	} else {
		rows, err = e.store.ListTenantsByStation(ctx, stationName)
	}
	if err != nil {
		return nil, err
	}

	tenants := make([]domain.Tenant, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, adapters.MapStoreTenantToDomain(row))
	}
	return tenants, nil
}

func (e *explorer) GetTenant(ctx context.Context, id int64) (domain.Tenant, error) {
	row, err := e.store.GetTenant(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}
	return adapters.MapStoreTenantToDomain(row), nil
}

// Surroundings centers a map on the station, circles its immediate vicinity
// and pins it with its name.
func Surroundings(st domain.Station) domain.MapView {
	center := domain.LatLon{Lat: st.Lat, Lon: st.Lon}
	return domain.MapView{
		Center: center,
		Zoom:   defaultMapZoom,
		Tiles:  defaultMapTiles,
		Circles: []domain.MapCircle{{
			Center:       center,
			RadiusMeters: surroundingsRadius,
			Color:        circleColor,
			FillColor:    circleFillColor,
		}},
		Markers: []domain.MapMarker{{
			Position: center,
			Popup:    st.Name,
		}},
	}
}
