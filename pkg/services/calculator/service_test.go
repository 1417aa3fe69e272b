package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockListingReader struct {
	mock.Mock
}

func (m *mockListingReader) GetTenant(ctx context.Context, id int64) (domain.Tenant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Tenant), args.Error(1)
}

type mockPresetSource struct {
	mock.Mock
}

func (m *mockPresetSource) GetPreset(name string) (map[string]string, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func TestService_CalculateForListing(t *testing.T) {
	ctx := context.Background()
	tenant := domain.Tenant{ID: 7, Address: "1-2-3 Dogenzaka", Price: 180_000, StationName: "Shibuya"}

	t.Run("uses listing rent by default", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).Return(tenant, nil)

		svc := NewService(listings, nil)
		got, calc, err := svc.CalculateForListing(ctx, 7, RawParameters{}, "")
		require.NoError(t, err)
		assert.Equal(t, tenant, got)
		assert.Equal(t, int64(180_000), calc.Parameters.RentCost)
		listings.AssertExpectations(t)
	})

	t.Run("explicit rent overrides listing", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).Return(tenant, nil)

		svc := NewService(listings, nil)
		_, calc, err := svc.CalculateForListing(ctx, 7, RawParameters{ParamRentCost: "90000"}, "")
		require.NoError(t, err)
		assert.Equal(t, int64(90_000), calc.Parameters.RentCost)
	})

	t.Run("unknown listing", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(404)).
			Return(domain.Tenant{}, fmt.Errorf("tenant 404: %w", store.ErrNotFound))

		svc := NewService(listings, nil)
		_, _, err := svc.CalculateForListing(ctx, 404, RawParameters{}, "")
		assert.ErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("store failure is not reported as not found", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).
			Return(domain.Tenant{}, errors.New("database is locked"))

		svc := NewService(listings, nil)
		_, _, err := svc.CalculateForListing(ctx, 7, RawParameters{}, "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("validation errors propagate", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).Return(tenant, nil)

		svc := NewService(listings, nil)
		_, _, err := svc.CalculateForListing(ctx, 7, RawParameters{ParamSeats: "abc"}, "")
		var verr ValidationErrors
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("preset values sit below explicit values", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).Return(tenant, nil)
		presets := new(mockPresetSource)
		presets.On("GetPreset", "barber").
			Return(map[string]string{ParamSeats: "4", ParamCustomerPrice: "3500"}, nil)

		svc := NewService(listings, presets)
		_, calc, err := svc.CalculateForListing(ctx, 7, RawParameters{ParamCustomerPrice: "4000"}, "barber")
		require.NoError(t, err)
		assert.Equal(t, 4, calc.Parameters.Seats)
		assert.Equal(t, int64(4000), calc.Parameters.CustomerPrice)
		presets.AssertExpectations(t)
	})

	t.Run("unknown preset", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).Return(tenant, nil)
		presets := new(mockPresetSource)
		registryErr := errors.New("section spa does not exist")
		presets.On("GetPreset", "spa").Return(nil, registryErr)

		svc := NewService(listings, presets)
		_, _, err := svc.CalculateForListing(ctx, 7, RawParameters{}, "spa")
		assert.ErrorIs(t, err, ErrPresetNotFound)
		assert.ErrorIs(t, err, registryErr)
		assert.ErrorContains(t, err, "section spa does not exist")
	})

	t.Run("preset without a source", func(t *testing.T) {
		listings := new(mockListingReader)
		listings.On("GetTenant", mock.Anything, int64(7)).Return(tenant, nil)

		svc := NewService(listings, nil)
		_, _, err := svc.CalculateForListing(ctx, 7, RawParameters{}, "spa")
		assert.ErrorIs(t, err, ErrPresetNotFound)
	})
}

func TestService_Calculate(t *testing.T) {
	ctx := context.Background()

	t.Run("no listing needed", func(t *testing.T) {
		svc := NewService(nil, nil)
		calc, err := svc.Calculate(ctx, 100_000, RawParameters{}, "")
		require.NoError(t, err)
		assert.Equal(t, int64(-257_000), calc.NetProfit)
	})

	t.Run("chair alias beats preset seats", func(t *testing.T) {
		presets := new(mockPresetSource)
		presets.On("GetPreset", "salon").Return(map[string]string{ParamSeats: "4"}, nil)

		svc := NewService(nil, presets)
		calc, err := svc.Calculate(ctx, 100_000, RawParameters{"chair": "6"}, "salon")
		require.NoError(t, err)
		assert.Equal(t, 6, calc.Parameters.Seats)
	})
}
