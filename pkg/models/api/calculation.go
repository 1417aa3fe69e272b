package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const initialCheckSufficient = "sufficient"

// InitialCheck is encoded as the string "sufficient" or as the signed
// shortfall in yen.
type InitialCheck struct {
	Sufficient bool
	Shortfall  int64
}

func (c InitialCheck) MarshalJSON() ([]byte, error) {
	if c.Sufficient {
		return json.Marshal(initialCheckSufficient)
	}
	return json.Marshal(c.Shortfall)
}

func (c *InitialCheck) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != initialCheckSufficient {
			return fmt.Errorf("unknown initial check %q", s)
		}
		*c = InitialCheck{Sufficient: true}
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = InitialCheck{Shortfall: n}
	return nil
}

func (c InitialCheck) String() string {
	if c.Sufficient {
		return initialCheckSufficient
	}
	return fmt.Sprintf("%d", c.Shortfall)
}

// CalculationInputs echoes every parameter after defaults were applied.
// InitialInvestment is in man-yen, all other amounts in yen.
type CalculationInputs struct {
	InitialInvestment decimal.Decimal `json:"initial_investment"`
	BusinessHours     int             `json:"business_hours"`
	AvgServiceMinutes int             `json:"avg_service_minutes"`
	Seats             int             `json:"seats"`
	BookingRatePct    int             `json:"booking_rate_pct"`
	DaysPerMonth      int             `json:"days_per_month"`
	CustomerPrice     int64           `json:"customer_price"`
	MovingInCost      int64           `json:"movingin_cost"`
	MovingCost        int64           `json:"moving_cost"`
	RentCost          int64           `json:"rent_cost"`
	HireCost          int             `json:"hire_cost"`
	UtilityCost       float64         `json:"utility_cost"`
	MaterialCostPct   float64         `json:"material_cost_pct"`
	AdCost            int64           `json:"ad_cost"`
}

type Calculation struct {
	ListingID    int64             `json:"listing_id"`
	Inputs       CalculationInputs `json:"inputs"`
	MaxTurnover  float64           `json:"max_turnover"`
	ServiceCount float64           `json:"service_count"`
	GrossRevenue int64             `json:"gross_revenue"`
	InitialCost  int64             `json:"initial_cost"`
	InitialCheck InitialCheck      `json:"initial_check"`
	FixedCost    float64           `json:"fixed_cost"`
	VariableCost int64             `json:"variable_cost"`
	NetProfit    int64             `json:"net_profit"`
}
