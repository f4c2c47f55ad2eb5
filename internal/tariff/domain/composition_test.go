package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
)

func validRow() CompositionRow {
	return CompositionRow{
		Months:      "1,2,3",
		Days:        "M,T,W,T,F",
		FuseFrom:    "16",
		FuseTo:      "25",
		Unit:        "SEK/kW",
		PriceExcVat: "43.20",
		PriceIncVat: "54.00",
		From:        "06:00",
		To:          "22:00",
		Multiplier:  "1",
	}
}

func TestParseCompositionValidRow(t *testing.T) {
	comp, err := ParseComposition(validRow())
	require.NoError(t, err)
	require.Equal(t, []string{"jan", "feb", "mar"}, comp.Months)
	require.Equal(t, []string{"mon", "tue", "wed", "thu", "fri"}, comp.Days)
	require.Equal(t, 43.20, comp.PriceExcVat)
	require.Equal(t, 54.00, comp.PriceIncVat)
	require.Len(t, comp.Intervals, 1)
	require.Equal(t, TimeInterval{From: "06:00", To: "22:00", Multiplier: 1}, comp.Intervals[0])
}

func TestParseCompositionBlankMonthsAndDaysMeanAll(t *testing.T) {
	row := validRow()
	row.Months = ""
	row.Days = ""
	comp, err := ParseComposition(row)
	require.NoError(t, err)
	require.Equal(t, []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}, comp.Months)
	require.Equal(t, []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}, comp.Days)
}

func TestParseMonths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "subset", input: "11,12,1", want: []string{"nov", "dec", "jan"}},
		{name: "spaces tolerated", input: " 6 , 7 ", want: []string{"jun", "jul"}},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "thirteen rejected", input: "13", wantErr: true},
		{name: "garbage rejected", input: "jan", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMonths(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "weekdays", input: "M,T,W,T,F", want: []string{"mon", "tue", "wed", "thu", "fri"}},
		{name: "weekend", input: "S,S", want: []string{"sat", "sun"}},
		{name: "full week", input: "M,T,W,T,F,S,S", want: []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}},
		{name: "embedded whitespace stripped", input: " M, T, W, T, F ", want: []string{"mon", "tue", "wed", "thu", "fri"}},
		{name: "unknown pattern rejected", input: "M,W,F", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDays(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntervalMidnightEndNormalized(t *testing.T) {
	row := validRow()
	row.From = "06:00"
	row.To = "0:00"
	comp, err := ParseComposition(row)
	require.NoError(t, err)
	require.Equal(t, "24:00", comp.Intervals[0].To)
}

func TestParseIntervalsSecondInterval(t *testing.T) {
	row := validRow()
	row.From = "06:00"
	row.To = "12:00"
	row.From2 = "18:00"
	row.To2 = "0:00"
	row.Multiplier2 = "0.5"
	comp, err := ParseComposition(row)
	require.NoError(t, err)
	require.Len(t, comp.Intervals, 2)
	require.Equal(t, TimeInterval{From: "18:00", To: "24:00", Multiplier: 0.5}, comp.Intervals[1])
}

func TestParseIntervalsMissingPrimaryFrom(t *testing.T) {
	row := validRow()
	row.From = ""
	_, err := ParseComposition(row)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParseIntervalsOverlapRejected(t *testing.T) {
	row := validRow()
	row.From = "06:00"
	row.To = "14:00"
	row.From2 = "12:00"
	row.To2 = "20:00"
	row.Multiplier2 = "2"
	_, err := ParseComposition(row)
	require.Error(t, err)
}

func TestParseIntervalRejectsInvertedRange(t *testing.T) {
	row := validRow()
	row.From = "22:00"
	row.To = "06:00"
	_, err := ParseComposition(row)
	require.Error(t, err)
}

func TestParseIntervalRejectsBadMultiplier(t *testing.T) {
	for _, multiplier := range []string{"", "0", "-1", "x"} {
		row := validRow()
		row.Multiplier = multiplier
		_, err := ParseComposition(row)
		require.Error(t, err, "multiplier %q", multiplier)
	}
}

func TestParseCompositionRejectsVatBelowNet(t *testing.T) {
	row := validRow()
	row.PriceExcVat = "100"
	row.PriceIncVat = "80"
	_, err := ParseComposition(row)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParseBuildingType(t *testing.T) {
	tests := []struct {
		input   string
		want    BuildingType
		wantErr bool
	}{
		{input: "", want: BuildingTypeAll},
		{input: "detached_house", want: BuildingTypeHouse},
		{input: "apartments", want: BuildingTypeApartment},
		{input: "detached_house, apartments", want: BuildingTypeAll},
		{input: "Detached_House", want: BuildingTypeHouse},
		{input: "office", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseBuildingType(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		require.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNormalizeEndTime(t *testing.T) {
	require.Equal(t, "24:00", NormalizeEndTime("0:00"))
	require.Equal(t, "22:00", NormalizeEndTime("22:00"))
}
