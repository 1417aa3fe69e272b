package domain

import "github.com/shopspring/decimal"

// Parameters is the fully populated, typed input of a profitability projection.
// Monetary values are in yen.
type Parameters struct {
	InitialInvestment decimal.Decimal
	BusinessHours     int
	AvgServiceMinutes int
	Seats             int
	BookingRatePct    int
	DaysPerMonth      int
	CustomerPrice     int64
	MovingInCost      int64
	MovingCost        int64
	RentCost          int64
	HireCost          int // headcount
	UtilityCost       float64
	MaterialCostPct   float64
	AdCost            int64
}

// InitialCheck reports whether the initial investment covers the move-in costs.
// When it does not, Shortfall holds the signed (negative) difference in yen.
type InitialCheck struct {
	Sufficient bool
	Shortfall  int64
}

// Calculation is the result of a single projection: every input after default
// substitution plus every derived quantity.
type Calculation struct {
	Parameters   Parameters
	MaxTurnover  float64
	ServiceCount float64
	GrossRevenue int64
	InitialCost  int64
	InitialCheck InitialCheck
	FixedCost    float64
	VariableCost int64
	NetProfit    int64
}
