package calculation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Calculate(
	ctx context.Context,
	rent int64,
	raw calculator.RawParameters,
	preset string,
) (domain.Calculation, error) {
	args := m.Called(ctx, rent, raw, preset)
	return args.Get(0).(domain.Calculation), args.Error(1)
}

func (m *mockService) CalculateForListing(
	ctx context.Context,
	listingID int64,
	raw calculator.RawParameters,
	preset string,
) (domain.Tenant, domain.Calculation, error) {
	args := m.Called(ctx, listingID, raw, preset)
	return args.Get(0).(domain.Tenant), args.Get(1).(domain.Calculation), args.Error(2)
}

type mockPresets struct {
	mock.Mock
}

func (m *mockPresets) GetPresets() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPresets) GetPreset(name string) (map[string]string, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func setupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/tenants/{id}/calculation", h.Calculate)
	r.Post("/tenants/{id}/calculation", h.Calculate)
	r.Get("/presets", h.ListPresets)
	return r
}

func defaultCalculation(t *testing.T) domain.Calculation {
	calc, err := calculator.Compute(100_000, nil)
	require.NoError(t, err)
	return calc
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		contentType    string
		body           string
		setupMock      func(*testing.T, *mockService)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "query parameters",
			method: http.MethodGet,
			target: "/tenants/7/calculation?seats=3&preset=barber",
			setupMock: func(t *testing.T, m *mockService) {
				m.On("CalculateForListing", mock.Anything, int64(7),
					calculator.RawParameters{"seats": "3"}, "barber").
					Return(domain.Tenant{ID: 7}, defaultCalculation(t), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var got api.Calculation
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, int64(7), got.ListingID)
				assert.Equal(t, int64(-257_000), got.NetProfit)
				assert.Equal(t, "2000000", got.Inputs.InitialInvestment.String())
			},
		},
		{
			name:        "json body overrides query",
			method:      http.MethodPost,
			target:      "/tenants/7/calculation?seats=3",
			contentType: "application/json",
			body:        `{"seats": 4, "ad_cost": "50000", "utility_cost": null}`,
			setupMock: func(t *testing.T, m *mockService) {
				m.On("CalculateForListing", mock.Anything, int64(7),
					calculator.RawParameters{"seats": "4", "ad_cost": "50000", "utility_cost": ""}, "").
					Return(domain.Tenant{ID: 7}, defaultCalculation(t), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "form body",
			method:      http.MethodPost,
			target:      "/tenants/7/calculation",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"chair": {"5"}}.Encode(),
			setupMock: func(t *testing.T, m *mockService) {
				m.On("CalculateForListing", mock.Anything, int64(7),
					calculator.RawParameters{"seats": "5"}, "").
					Return(domain.Tenant{ID: 7}, defaultCalculation(t), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "nested json value",
			method:         http.MethodPost,
			target:         "/tenants/7/calculation",
			contentType:    "application/json",
			body:           `{"seats": [1, 2]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid tenant id",
			method:         http.MethodGet,
			target:         "/tenants/abc/calculation",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "validation errors",
			method: http.MethodGet,
			target: "/tenants/7/calculation?seats=abc",
			setupMock: func(t *testing.T, m *mockService) {
				m.On("CalculateForListing", mock.Anything, int64(7), mock.Anything, "").
					Return(domain.Tenant{}, domain.Calculation{}, calculator.ValidationErrors{
						{Field: "seats", Value: "abc", Message: "must be an integer"},
					})
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var got api.Error
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, []api.FieldError{{Field: "seats", Value: "abc", Message: "must be an integer"}}, got.Fields)
			},
		},
		{
			name:   "unknown listing",
			method: http.MethodGet,
			target: "/tenants/9/calculation",
			setupMock: func(t *testing.T, m *mockService) {
				m.On("CalculateForListing", mock.Anything, int64(9), mock.Anything, "").
					Return(domain.Tenant{}, domain.Calculation{}, calculator.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "unknown preset",
			method: http.MethodGet,
			target: "/tenants/7/calculation?preset=nope",
			setupMock: func(t *testing.T, m *mockService) {
				m.On("CalculateForListing", mock.Anything, int64(7), mock.Anything, "nope").
					Return(domain.Tenant{}, domain.Calculation{}, calculator.ErrPresetNotFound)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			if tt.setupMock != nil {
				tt.setupMock(t, service)
			}
			router := setupRouter(NewHandler(service, nil))

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, rec)
			}
			service.AssertExpectations(t)
		})
	}
}

func TestListPresets(t *testing.T) {
	t.Run("no registry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		setupRouter(NewHandler(new(mockService), nil)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/presets", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("registry", func(t *testing.T) {
		presets := new(mockPresets)
		presets.On("GetPresets").Return([]string{"salon"}, nil)
		presets.On("GetPreset", "salon").Return(map[string]string{"seats": "4"}, nil)

		rec := httptest.NewRecorder()
		setupRouter(NewHandler(new(mockService), presets)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/presets", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"name":"salon","values":{"seats":"4"}}]`, rec.Body.String())
		presets.AssertExpectations(t)
	})
}
