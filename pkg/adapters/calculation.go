package adapters

import (
	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/domain"
)

// MapInitialCheckDomainToApi encodes the check as "sufficient" or as the
// signed shortfall in yen.
func MapInitialCheckDomainToApi(c domain.InitialCheck) api.InitialCheck {
	if c.Sufficient {
		return api.InitialCheck{Sufficient: true}
	}
	return api.InitialCheck{Shortfall: c.Shortfall}
}

// MapCalculationDomainToApi converts a projection for display. The initial
// investment goes back to man-yen here.
func MapCalculationDomainToApi(listingID int64, c domain.Calculation) api.Calculation {
	p := c.Parameters
	return api.Calculation{
		ListingID: listingID,
		Inputs: api.CalculationInputs{
			InitialInvestment: domain.YenToManYen(p.InitialInvestment),
			BusinessHours:     p.BusinessHours,
			AvgServiceMinutes: p.AvgServiceMinutes,
			Seats:             p.Seats,
			BookingRatePct:    p.BookingRatePct,
			DaysPerMonth:      p.DaysPerMonth,
			CustomerPrice:     p.CustomerPrice,
			MovingInCost:      p.MovingInCost,
			MovingCost:        p.MovingCost,
			RentCost:          p.RentCost,
			HireCost:          p.HireCost,
			UtilityCost:       p.UtilityCost,
			MaterialCostPct:   p.MaterialCostPct,
			AdCost:            p.AdCost,
		},
		MaxTurnover:  c.MaxTurnover,
		ServiceCount: c.ServiceCount,
		GrossRevenue: c.GrossRevenue,
		InitialCost:  c.InitialCost,
		InitialCheck: MapInitialCheckDomainToApi(c.InitialCheck),
		FixedCost:    c.FixedCost,
		VariableCost: c.VariableCost,
		NetProfit:    c.NetProfit,
	}
}
