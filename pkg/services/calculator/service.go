package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// ListingReader resolves a tenant listing by id. Implementations return an
// error wrapping store.ErrNotFound for unknown ids.
type ListingReader interface {
	GetTenant(ctx context.Context, id int64) (domain.Tenant, error)
}

// PresetSource resolves named parameter presets.
type PresetSource interface {
	GetPreset(name string) (map[string]string, error)
}

type Service interface {
	// Calculate projects a lease at the given monthly rent.
	Calculate(ctx context.Context, rent int64, raw RawParameters, preset string) (domain.Calculation, error)
	CalculateForListing(
		ctx context.Context,
		listingID int64,
		raw RawParameters,
		preset string,
	) (domain.Tenant, domain.Calculation, error)
}

type defaultService struct {
	listings ListingReader
	presets  PresetSource
}

// NewService builds a calculation service. presets may be nil, in which case
// every named preset is reported as missing.
func NewService(listings ListingReader, presets PresetSource) Service {
	return &defaultService{
		listings: listings,
		presets:  presets,
	}
}

func (s *defaultService) CalculateForListing(
	ctx context.Context,
	listingID int64,
	raw RawParameters,
	preset string,
) (domain.Tenant, domain.Calculation, error) {
	tenant, err := s.listings.GetTenant(ctx, listingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, domain.Calculation{}, fmt.Errorf("%w: %d", ErrListingNotFound, listingID)
		}
		return domain.Tenant{}, domain.Calculation{}, fmt.Errorf("failed to load listing %d: %w", listingID, err)
	}

	calc, err := s.Calculate(ctx, tenant.Price, raw, preset)
	if err != nil {
		return domain.Tenant{}, domain.Calculation{}, err
	}
	return tenant, calc, nil
}

func (s *defaultService) Calculate(
	ctx context.Context,
	rent int64,
	raw RawParameters,
	preset string,
) (domain.Calculation, error) {
	logger := zerolog.Ctx(ctx)

	params := raw
	if preset != "" {
		base, err := s.resolvePreset(preset)
		if err != nil {
			return domain.Calculation{}, err
		}
		params = Merge(base, raw)
	}

	calc, err := Compute(rent, params)
	if err != nil {
		logger.Debug().
			Err(err).
			Int64("rent", rent).
			Msg("calculation rejected")
		return domain.Calculation{}, err
	}

	logger.Debug().
		Int64("rent", rent).
		Str("preset", preset).
		Int64("net_profit", calc.NetProfit).
		Msg("calculation completed")

	return calc, nil
}

func (s *defaultService) resolvePreset(name string) (RawParameters, error) {
	if s.presets == nil {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	values, err := s.presets.GetPreset(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPresetNotFound, name, err)
	}
	return RawParameters(values), nil
}
