package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/de-tools/tenant-atlas/pkg/services/config"
	"github.com/de-tools/tenant-atlas/pkg/services/listing"
	listingstore "github.com/de-tools/tenant-atlas/pkg/store/listing"
	"github.com/de-tools/tenant-atlas/pkg/store/post"
	"github.com/de-tools/tenant-atlas/pkg/store/sqldb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	ctx := context.Background()
	db, err := sqldb.NewDB(ctx, sqldb.Settings{
		Driver: sqldb.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "atlas.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	listings, err := listingstore.NewStore(db)
	require.NoError(t, err)
	require.NoError(t, listings.UpsertStations(ctx, []store.Station{
		{Name: "Shibuya", Address: "Shibuya, Tokyo", Lat: "35.658034", Lon: "139.701636"},
	}))
	require.NoError(t, listings.UpsertTenants(ctx, []store.Tenant{
		{Address: "1-1 Dogenzaka", Price: 180000, Floor: "2F", StationName: "Shibuya"},
	}))

	posts, err := post.NewStore(db)
	require.NoError(t, err)

	presets, err := config.NewPresetRegistryFromBytes([]byte("[barber]\nseats = 3\n"))
	require.NoError(t, err)

	explorer := listing.NewExplorer(listings)
	api := NewWebAPI(Config{
		Addr: ":0",
		Dependencies: Dependencies{
			Listings:   explorer,
			Calculator: calculator.NewService(explorer, presets),
			Presets:    presets,
			Posts:      posts,
			Logger:     zerolog.New(zerolog.NewTestWriter(t)),
		},
	})

	ts := httptest.NewServer(api.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(body []byte) (interface{}, error) {
		var v T
		err := json.Unmarshal(body, &v)
		return v, err
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	ts := setupServer(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "Health",
			path:           "/health",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"ok"}`, string(body))
			},
		},
		{
			name:           "ListStations",
			path:           "/api/v1/stations",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				v, err := unmarshalResponse[[]api.Station]()(body)
				require.NoError(t, err)
				stations := v.([]api.Station)
				require.Len(t, stations, 1)
				assert.Equal(t, 35.658034, stations[0].Lat)
			},
		},
		{
			name:           "StationOverview",
			path:           "/api/v1/stations/Shibuya",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				v, err := unmarshalResponse[api.StationOverview]()(body)
				require.NoError(t, err)
				overview := v.(api.StationOverview)
				assert.Len(t, overview.Tenants, 1)
				assert.Equal(t, 15, overview.Map.Zoom)
			},
		},
		{
			name:           "UnknownStation",
			path:           "/api/v1/stations/Atlantis",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "TenantsByStation",
			path:           "/api/v1/tenants?station=shibuya",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				v, err := unmarshalResponse[[]api.Tenant]()(body)
				require.NoError(t, err)
				assert.Len(t, v.([]api.Tenant), 1)
			},
		},
		{
			name:           "UnknownTenant",
			path:           "/api/v1/tenants/99",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "CalculationDefaults",
			path:           "/api/v1/tenants/1/calculation",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				v, err := unmarshalResponse[api.Calculation]()(body)
				require.NoError(t, err)
				calc := v.(api.Calculation)
				assert.Equal(t, int64(1_000_000), calc.GrossRevenue)
				assert.Equal(t, int64(180_000), calc.Inputs.RentCost)
				assert.True(t, calc.InitialCheck.Sufficient)
				assert.True(t, decimal.NewFromInt(2_000_000).Equal(calc.Inputs.InitialInvestment))
				assert.Contains(t, string(body), `"initial_check":"sufficient"`)
			},
		},
		{
			name:           "CalculationWithPreset",
			path:           "/api/v1/tenants/1/calculation?preset=barber",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				v, err := unmarshalResponse[api.Calculation]()(body)
				require.NoError(t, err)
				assert.Equal(t, 3, v.(api.Calculation).Inputs.Seats)
			},
		},
		{
			name:           "CalculationInvalid",
			path:           "/api/v1/tenants/1/calculation?seats=abc",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				v, err := unmarshalResponse[api.Error]()(body)
				require.NoError(t, err)
				e := v.(api.Error)
				require.Len(t, e.Fields, 1)
				assert.Equal(t, "seats", e.Fields[0].Field)
			},
		},
		{
			name:           "CalculationUnknownListing",
			path:           "/api/v1/tenants/42/calculation",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Presets",
			path:           "/api/v1/presets",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `[{"name":"barber","values":{"seats":"3"}}]`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(body))
			assert.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestWebAPI_CalculationPostForm(t *testing.T) {
	ts := setupServer(t)

	form := url.Values{
		"chair":          {"3"},
		"rent_cost":      {"200000"},
		"customer_price": {""},
	}
	resp, err := http.PostForm(ts.URL+"/api/v1/tenants/1/calculation", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var calc api.Calculation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&calc))
	assert.Equal(t, 3, calc.Inputs.Seats)
	assert.Equal(t, int64(200_000), calc.Inputs.RentCost)
	assert.Equal(t, int64(5000), calc.Inputs.CustomerPrice)
	assert.Equal(t, calc.GrossRevenue-int64(calc.FixedCost)-calc.VariableCost, calc.NetProfit)
}

func TestWebAPI_PostsLifecycle(t *testing.T) {
	ts := setupServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/posts", "application/json",
		strings.NewReader(`{"title":"Hello","body":"First post"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Hello", created.Title)

	resp, err = http.Get(ts.URL + "/api/v1/posts")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []api.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/posts/1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
