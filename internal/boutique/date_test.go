package boutique

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-08-10")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.August, 10), d)
	assert.Equal(t, "2024-08-10", d.String())

	_, err = ParseDate("10/08/2024")
	assert.True(t, IsKind(err, KindValidation))
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D Date `json:"d"`
		Z Date `json:"z"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-08-12","z":null}`), &v))
	assert.Equal(t, MustDate("2024-08-12"), v.D)
	assert.True(t, v.Z.IsZero())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-08-12","z":null}`, string(b))

	err = json.Unmarshal([]byte(`{"d":"August"}`), &v)
	assert.True(t, IsKind(err, KindValidation))
}

func TestDateRange(t *testing.T) {
	a := DateRange{Start: MustDate("2024-08-10"), End: MustDate("2024-08-12")}
	require.NoError(t, a.Validate())
	assert.Equal(t, 3, a.Days())

	cases := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"shared end day", DateRange{MustDate("2024-08-12"), MustDate("2024-08-14")}, true},
		{"inside", DateRange{MustDate("2024-08-11"), MustDate("2024-08-11")}, true},
		{"covers", DateRange{MustDate("2024-08-01"), MustDate("2024-08-31")}, true},
		{"day after", DateRange{MustDate("2024-08-13"), MustDate("2024-08-15")}, false},
		{"day before", DateRange{MustDate("2024-08-05"), MustDate("2024-08-09")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(a))
		})
	}

	var days []string
	a.EachDay(func(d Date) { days = append(days, d.String()) })
	assert.Equal(t, []string{"2024-08-10", "2024-08-11", "2024-08-12"}, days)
}

func TestDateRangeValidate(t *testing.T) {
	err := DateRange{Start: MustDate("2024-08-12"), End: MustDate("2024-08-10")}.Validate()
	assert.True(t, IsKind(err, KindValidation))

	err = DateRange{Start: MustDate("2024-08-12")}.Validate()
	assert.True(t, IsKind(err, KindValidation))

	one := DateRange{Start: MustDate("2024-08-12"), End: MustDate("2024-08-12")}
	require.NoError(t, one.Validate())
	assert.Equal(t, 1, one.Days())
}

func TestDaysAcrossMonthEnd(t *testing.T) {
	r := DateRange{Start: MustDate("2024-02-28"), End: MustDate("2024-03-01")}
	assert.Equal(t, 3, r.Days())
}

func TestDateRangeLongSpan(t *testing.T) {
	r := DateRange{Start: MustDate("2024-01-01"), End: MustDate("9999-12-31")}
	assert.Equal(t, 2913174, r.Days())
	assert.True(t, IsKind(r.Validate(), KindValidation))

	year := DateRange{Start: MustDate("2024-01-01"), End: MustDate("2024-12-30")}
	assert.Equal(t, MaxRangeDays, year.Days())
	require.NoError(t, year.Validate())

	over := DateRange{Start: MustDate("2024-01-01"), End: MustDate("2024-12-31")}
	assert.True(t, IsKind(over.Validate(), KindValidation))
}
