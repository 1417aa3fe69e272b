package store

// Station mirrors a stations row. Coordinates are kept as text, the way the
// listing data is delivered.
type Station struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
}

type Tenant struct {
	ID          int64  `json:"id"`
	Address     string `json:"address"`
	Price       int64  `json:"price"`
	Floor       string `json:"floor"`
	StationName string `json:"station_name"`
	DetailURL   string `json:"detail_url"`
	ImageURL    string `json:"image_url"`
	Shikikin    int64  `json:"shikikin"`
	Reikin      int64  `json:"reikin"`
	Hoshokin    int64  `json:"hoshokin"`
	Kaiyakukin  int64  `json:"kaiyakukin"`
}

// ListingDataset is the seed file layout for stations and tenants.
type ListingDataset struct {
	Stations []Station `json:"stations"`
	Tenants  []Tenant  `json:"tenants"`
}
