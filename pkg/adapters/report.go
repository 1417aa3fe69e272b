package adapters

import (
	"fmt"
	"strconv"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
)

const (
	unitYen     = "yen"
	unitManYen  = "man-yen"
	unitPercent = "%"
)

// MapCalculationToReport lays a projection out as inputs, revenue and costs.
// tenant is optional and only contributes the subtitle.
func MapCalculationToReport(tenant *domain.Tenant, c domain.Calculation) *domain.Report {
	p := c.Parameters

	report := &domain.Report{Title: "Leasing profitability"}
	if tenant != nil {
		report.Subtitle = fmt.Sprintf("Listing #%d, %s (%s)", tenant.ID, tenant.Address, tenant.StationName)
	}

	report.Sections = []domain.ReportSection{
		{
			Title: "Inputs",
			Details: []domain.ReportDetail{
				{Name: "Initial investment", Value: domain.YenToManYen(p.InitialInvestment).String(), Unit: unitManYen},
				{Name: "Business hours", Value: p.BusinessHours, Unit: "h/day"},
				{Name: "Average service time", Value: p.AvgServiceMinutes, Unit: "min"},
				{Name: "Seats", Value: p.Seats},
				{Name: "Booking rate", Value: p.BookingRatePct, Unit: unitPercent},
				{Name: "Days per month", Value: p.DaysPerMonth},
				{Name: "Customer price", Value: p.CustomerPrice, Unit: unitYen},
				{Name: "Move-in cost", Value: p.MovingInCost, Unit: unitYen},
				{Name: "Moving cost", Value: p.MovingCost, Unit: unitYen},
				{Name: "Rent", Value: p.RentCost, Unit: unitYen},
				{Name: "Hires", Value: p.HireCost, Description: "350,000 yen per head"},
				{Name: "Utilities", Value: formatYen(p.UtilityCost), Unit: unitYen},
				{Name: "Material cost", Value: p.MaterialCostPct, Unit: unitPercent, Description: "of gross revenue"},
				{Name: "Advertising", Value: p.AdCost, Unit: unitYen},
			},
		},
		{
			Title: "Revenue",
			Details: []domain.ReportDetail{
				{Name: "Max turnover", Value: fmt.Sprintf("%.3f", c.MaxTurnover), Description: "services per seat per day"},
				{Name: "Service count", Value: fmt.Sprintf("%.3f", c.ServiceCount), Description: "services per day"},
				{Name: "Gross revenue", Value: c.GrossRevenue, Unit: unitYen, Description: "per month"},
			},
		},
		{
			Title: "Costs",
			Summary: map[string]interface{}{
				"Net profit": fmt.Sprintf("%d yen", c.NetProfit),
			},
			Details: []domain.ReportDetail{
				{Name: "Initial cost", Value: c.InitialCost, Unit: unitYen},
				{Name: "Initial check", Value: initialCheckText(c.InitialCheck)},
				{Name: "Fixed cost", Value: formatYen(c.FixedCost), Unit: unitYen, Description: "rent, staff, utilities"},
				{Name: "Variable cost", Value: c.VariableCost, Unit: unitYen, Description: "materials, advertising"},
				{Name: "Net profit", Value: c.NetProfit, Unit: unitYen},
			},
		},
	}
	return report
}

func initialCheckText(c domain.InitialCheck) string {
	if c.Sufficient {
		return "sufficient"
	}
	return fmt.Sprintf("short by %d yen", -c.Shortfall)
}

// formatYen prints fractional yen amounts without rounding them away.
func formatYen(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
