package calculator

import (
	"testing"

	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameters_ManYenRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "1", "250.5", "0.0001", "1234567.891011", "1e3"} {
		p, err := ParseParameters(RawParameters{ParamInitialInvestment: in}, 0)
		require.NoError(t, err)

		want, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.True(t, want.Equal(domain.YenToManYen(p.InitialInvestment)), "input %s", in)
	}
}

func TestParseParameters_ChairAlias(t *testing.T) {
	p, err := ParseParameters(RawParameters{"chair": "4"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Seats)

	p, err = ParseParameters(RawParameters{"chair": "4", ParamSeats: "6"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Seats)
}

func TestParseParameters_UnknownKeysIgnored(t *testing.T) {
	p, err := ParseParameters(RawParameters{"selected_option": "Shibuya"}, 10)
	require.NoError(t, err)
	assert.Equal(t, DefaultParameters(10), p)
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{
		{Field: ParamSeats, Value: "abc", Message: "must be an integer"},
		{Field: ParamAdCost, Value: "x", Message: "must be an integer"},
	}
	assert.Equal(t,
		`invalid parameters: seats: must be an integer (got "abc"); ad_cost: must be an integer (got "x")`,
		err.Error(),
	)
}

func TestMerge(t *testing.T) {
	base := RawParameters{ParamSeats: "3", ParamCustomerPrice: "6000"}
	overrides := RawParameters{ParamCustomerPrice: "7000", ParamSeats: " ", ParamAdCost: ""}

	merged := Merge(base, overrides)
	assert.Equal(t, RawParameters{
		ParamSeats:         "3",
		ParamCustomerPrice: "7000",
		ParamAdCost:        "",
	}, merged)
}

func TestMerge_AliasOverridesPreset(t *testing.T) {
	merged := Merge(RawParameters{ParamSeats: "3"}, RawParameters{"chair": "5"})
	assert.Equal(t, "5", merged[ParamSeats])

	p, err := ParseParameters(merged, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Seats)
}
