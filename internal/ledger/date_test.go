package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmantri/spendwise/internal/ledger"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-15", want: "2024-01-15"},
		{in: "2024-1-5", want: "2024-01-05"}, // permissive single digits
		{in: "2023-12-31", want: "2023-12-31"},
		{in: "not-a-date", wantErr: true},
		{in: "15/01/2024", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ledger.ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Buckets(t *testing.T) {
	d := ledger.NewDate(2024, time.February, 9)
	assert.Equal(t, "2024-02", d.MonthKey())
	assert.Equal(t, "2024", d.YearKey())
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 9, d.Day())
}

func TestDate_Ordering(t *testing.T) {
	a := ledger.NewDate(2024, time.January, 15)
	b := ledger.NewDate(2024, time.January, 16)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := ledger.NewDate(2024, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-07"`, string(data))

	var out ledger.Date
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, d, out)
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d ledger.Date
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDate_Zero(t *testing.T) {
	var d ledger.Date
	assert.True(t, d.IsZero())
	assert.False(t, ledger.NewDate(2024, time.January, 1).IsZero())
}
