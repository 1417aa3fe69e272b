package api

type Station struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type Tenant struct {
	ID          int64  `json:"id"`
	Address     string `json:"address"`
	MonthlyRent int64  `json:"monthly_rent"`
	Floor       string `json:"floor"`
	StationName string `json:"station_name"`
	DetailURL   string `json:"detail_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Deposit     int64  `json:"deposit"`
	KeyMoney    int64  `json:"key_money"`
	Guarantee   int64  `json:"guarantee"`
	Cancelation int64  `json:"cancellation_fee"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type MapCircle struct {
	Center       LatLon  `json:"center"`
	RadiusMeters float64 `json:"radius_m"`
	Color        string  `json:"color"`
	FillColor    string  `json:"fill_color"`
}

type MapMarker struct {
	Position LatLon `json:"position"`
	Popup    string `json:"popup"`
}

type MapView struct {
	Center  LatLon      `json:"center"`
	Zoom    int         `json:"zoom"`
	Tiles   string      `json:"tiles"`
	Circles []MapCircle `json:"circles"`
	Markers []MapMarker `json:"markers"`
}

type StationOverview struct {
	Station Station  `json:"station"`
	Tenants []Tenant `json:"tenants"`
	Map     MapView  `json:"map"`
}
