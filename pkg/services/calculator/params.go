package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// RawParameters holds untrusted parameter values keyed by parameter name.
type RawParameters map[string]string

const (
	ParamInitialInvestment = "initial_investment"
	ParamBusinessHours     = "business_hours"
	ParamAvgServiceMinutes = "avg_service_minutes"
	ParamSeats             = "seats"
	ParamBookingRatePct    = "booking_rate_pct"
	ParamDaysPerMonth      = "days_per_month"
	ParamCustomerPrice     = "customer_price"
	ParamMovingInCost      = "movingin_cost"
	ParamMovingCost        = "moving_cost"
	ParamRentCost          = "rent_cost"
	ParamHireCost          = "hire_cost"
	ParamUtilityCost       = "utility_cost"
	ParamMaterialCostPct   = "material_cost_pct"
	ParamAdCost            = "ad_cost"
)

// ParameterNames lists every accepted parameter in display order.
var ParameterNames = []string{
	ParamInitialInvestment,
	ParamBusinessHours,
	ParamAvgServiceMinutes,
	ParamSeats,
	ParamBookingRatePct,
	ParamDaysPerMonth,
	ParamCustomerPrice,
	ParamMovingInCost,
	ParamMovingCost,
	ParamRentCost,
	ParamHireCost,
	ParamUtilityCost,
	ParamMaterialCostPct,
	ParamAdCost,
}

// Accepted ranges. They keep every intermediate value of a projection well
// inside int64 and the exact-integer range of float64.
const (
	maxBusinessHours  = 24
	maxServiceMinutes = 24 * 60
	maxSeats          = 1000
	maxDaysPerMonth   = 31
	maxCustomerPrice  = 10_000_000
	maxHires          = 1000
	maxAmount         = 1_000_000_000_000 // yen, either sign
	maxPercent        = 100

	maxManYenIntegerDigits  = 12
	maxManYenFractionDigits = 8
)

// aliases maps legacy form field names to parameter names.
var aliases = map[string]string{
	"chair": ParamSeats,
}

// DefaultInitialInvestmentManYen is the default capital, in man-yen.
var DefaultInitialInvestmentManYen = decimal.NewFromInt(2_000_000)

// DefaultParameters returns the parameter set used when nothing is supplied.
// The rent defaults to the listing's monthly rent.
func DefaultParameters(rent int64) domain.Parameters {
	return domain.Parameters{
		InitialInvestment: domain.ManYenToYen(DefaultInitialInvestmentManYen),
		BusinessHours:     10,
		AvgServiceMinutes: 90,
		Seats:             2,
		BookingRatePct:    60,
		DaysPerMonth:      25,
		CustomerPrice:     5000,
		MovingInCost:      6,
		MovingCost:        500_000,
		RentCost:          rent,
		HireCost:          3,
		UtilityCost:       5000,
		MaterialCostPct:   0.2,
		AdCost:            100_000,
	}
}

// ParseParameters validates raw in a single pass. Blank or absent values keep
// their default; any non-blank value that does not parse or lies outside its
// accepted range is reported. All failures are returned together as
// ValidationErrors.
func ParseParameters(raw RawParameters, rent int64) (domain.Parameters, error) {
	p := DefaultParameters(rent)
	fp := &fieldParser{raw: raw}

	fp.manYen(ParamInitialInvestment, &p.InitialInvestment)
	fp.integer(ParamBusinessHours, &p.BusinessHours, 0, maxBusinessHours)
	fp.integer(ParamAvgServiceMinutes, &p.AvgServiceMinutes, 1, maxServiceMinutes)
	fp.integer(ParamSeats, &p.Seats, 0, maxSeats)
	fp.integer(ParamBookingRatePct, &p.BookingRatePct, 0, maxPercent)
	fp.integer(ParamDaysPerMonth, &p.DaysPerMonth, 0, maxDaysPerMonth)
	fp.amount(ParamCustomerPrice, &p.CustomerPrice, 0, maxCustomerPrice)
	fp.amount(ParamMovingInCost, &p.MovingInCost, -maxAmount, maxAmount)
	fp.amount(ParamMovingCost, &p.MovingCost, -maxAmount, maxAmount)
	fp.amount(ParamRentCost, &p.RentCost, -maxAmount, maxAmount)
	fp.integer(ParamHireCost, &p.HireCost, 0, maxHires)
	fp.float(ParamUtilityCost, &p.UtilityCost, -maxAmount, maxAmount)
	fp.float(ParamMaterialCostPct, &p.MaterialCostPct, 0, maxPercent)
	fp.amount(ParamAdCost, &p.AdCost, -maxAmount, maxAmount)

	if len(fp.errs) > 0 {
		return domain.Parameters{}, fp.errs
	}
	return p, nil
}

type fieldParser struct {
	raw  RawParameters
	errs ValidationErrors
}

// lookup returns the trimmed value of name, falling back to its aliases.
// ok is false when the value is absent or blank.
func (fp *fieldParser) lookup(name string) (string, bool) {
	if v := strings.TrimSpace(fp.raw[name]); v != "" {
		return v, true
	}
	for alias, target := range aliases {
		if target != name {
			continue
		}
		if v := strings.TrimSpace(fp.raw[alias]); v != "" {
			return v, true
		}
	}
	return "", false
}

func (fp *fieldParser) reject(name, msg string) {
	v, _ := fp.lookup(name)
	fp.errs = append(fp.errs, FieldError{Field: name, Value: v, Message: msg})
}

func (fp *fieldParser) outOfRange(name string, lo, hi any) {
	fp.reject(name, fmt.Sprintf("must be between %v and %v", lo, hi))
}

func (fp *fieldParser) integer(name string, dst *int, lo, hi int) {
	v, ok := fp.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	switch {
	case errors.Is(err, strconv.ErrRange):
		fp.outOfRange(name, lo, hi)
	case err != nil:
		fp.reject(name, "must be an integer")
	case n < lo || n > hi:
		fp.outOfRange(name, lo, hi)
	default:
		*dst = n
	}
}

func (fp *fieldParser) amount(name string, dst *int64, lo, hi int64) {
	v, ok := fp.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		fp.outOfRange(name, lo, hi)
	case err != nil:
		fp.reject(name, "must be an integer")
	case n < lo || n > hi:
		fp.outOfRange(name, lo, hi)
	default:
		*dst = n
	}
}

func (fp *fieldParser) float(name string, dst *float64, lo, hi float64) {
	v, ok := fp.lookup(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	switch {
	case err != nil && !errors.Is(err, strconv.ErrRange), math.IsNaN(f):
		fp.reject(name, "must be a finite number")
	case err != nil, f < lo || f > hi:
		fp.outOfRange(name, lo, hi)
	default:
		*dst = f
	}
}

// manYen parses a man-yen amount and stores it in yen. The digit bounds are
// checked on the parsed representation, before any arithmetic rescales it.
func (fp *fieldParser) manYen(name string, dst *decimal.Decimal) {
	v, ok := fp.lookup(name)
	if !ok {
		return
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		fp.reject(name, "must be a number")
		return
	}
	exp := int64(d.Exponent())
	if exp < -maxManYenFractionDigits || int64(d.NumDigits())+exp > maxManYenIntegerDigits {
		fp.reject(name, fmt.Sprintf("out of range: at most %d integer and %d decimal digits",
			maxManYenIntegerDigits, maxManYenFractionDigits))
		return
	}
	*dst = domain.ManYenToYen(d)
}

// Merge layers overrides on top of base. Blank override values do not mask
// base values.
func Merge(base, overrides RawParameters) RawParameters {
	out := make(RawParameters, len(base)+len(overrides))
	for k, v := range canonical(base) {
		out[k] = v
	}
	for k, v := range canonical(overrides) {
		if strings.TrimSpace(v) == "" {
			if _, exists := out[k]; exists {
				continue
			}
		}
		out[k] = v
	}
	return out
}

// canonical renames alias keys to their parameter name unless the parameter
// itself is already set.
func canonical(raw RawParameters) RawParameters {
	out := make(RawParameters, len(raw))
	for k, v := range raw {
		if _, isAlias := aliases[k]; !isAlias {
			out[k] = v
		}
	}
	for alias, target := range aliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		if strings.TrimSpace(out[target]) == "" {
			out[target] = v
		}
	}
	return out
}
