package calculator

import (
	"math"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	minutesPerHour = 60
	// perHeadCost is the monthly cost of one member of staff, in yen.
	perHeadCost = 350_000
)

// Compute parses raw against the defaults (rent being the listing's monthly
// rent) and projects the result. Nothing is computed when any parameter is
// rejected.
func Compute(rent int64, raw RawParameters) (domain.Calculation, error) {
	params, err := ParseParameters(raw, rent)
	if err != nil {
		return domain.Calculation{}, err
	}
	return Project(params), nil
}

// Project runs the monthly profitability projection for a validated
// parameter set.
func Project(p domain.Parameters) domain.Calculation {
	maxTurnover := float64(p.BusinessHours*minutesPerHour) / float64(p.AvgServiceMinutes)
	serviceCount := float64(p.Seats) * maxTurnover * (float64(p.BookingRatePct) / 100)
	grossRevenue := int64(math.Floor(serviceCount * float64(p.CustomerPrice) * float64(p.DaysPerMonth)))

	initialCost := p.MovingInCost + p.MovingCost

	fixedCost := float64(p.RentCost) + float64(int64(p.HireCost)*perHeadCost) + p.UtilityCost
	variableCost := int64(math.Floor(float64(grossRevenue)*p.MaterialCostPct/100 + float64(p.AdCost)))
	netProfit := int64(math.Floor(float64(grossRevenue) - (fixedCost + float64(variableCost))))

	return domain.Calculation{
		Parameters:   p,
		MaxTurnover:  maxTurnover,
		ServiceCount: serviceCount,
		GrossRevenue: grossRevenue,
		InitialCost:  initialCost,
		InitialCheck: checkInitialInvestment(p.InitialInvestment, initialCost),
		FixedCost:    fixedCost,
		VariableCost: variableCost,
		NetProfit:    netProfit,
	}
}

var minShortfall = decimal.NewFromInt(math.MinInt64)

func checkInitialInvestment(investment decimal.Decimal, initialCost int64) domain.InitialCheck {
	remaining := investment.Sub(decimal.NewFromInt(initialCost))
	if !remaining.IsNegative() {
		return domain.InitialCheck{Sufficient: true}
	}
	if remaining.LessThan(minShortfall) {
		return domain.InitialCheck{Shortfall: math.MinInt64}
	}
	return domain.InitialCheck{Shortfall: remaining.Floor().IntPart()}
}
