package domain

type Station struct {
	ID      int64
	Name    string
	Address string
	Lat     float64
	Lon     float64
}

// Tenant is a rentable space near a station. Price is the monthly rent in yen.
type Tenant struct {
	ID          int64
	Address     string
	Price       int64
	Floor       string
	StationName string
	DetailURL   string
	ImageURL    string
	Shikikin    int64 // deposit
	Reikin      int64 // key money
	Hoshokin    int64 // guarantee
	Kaiyakukin  int64 // cancellation fee
}

type LatLon struct {
	Lat float64
	Lon float64
}

type MapCircle struct {
	Center       LatLon
	RadiusMeters float64
	Color        string
	FillColor    string
}

type MapMarker struct {
	Position LatLon
	Popup    string
}

// MapView describes how a station's surroundings should be drawn by a map client.
type MapView struct {
	Center  LatLon
	Zoom    int
	Tiles   string
	Circles []MapCircle
	Markers []MapMarker
}

type StationOverview struct {
	Station Station
	Tenants []Tenant
	Map     MapView
}
