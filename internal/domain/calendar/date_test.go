package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptsCareerLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2021-03", "Mar 2021"},
		{"2021-03-01", "Mar 2021"},
		{"2021-03-01T00:00:00Z", "Mar 2021"},
		{"2021-03-01T00:00:00+02:00", "Mar 2021"},
		{"2021-02-28T23:30:00-05:00", "Feb 2021"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.MonthYear())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("March 2021")
	assert.ErrorContains(t, err, "want YYYY-MM")
}

func TestUnmarshalJSON(t *testing.T) {
	var v struct {
		Start Date  `json:"start"`
		End   *Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2021-03-01","end":null}`), &v))
	assert.True(t, v.Start.Equal(New(2021, time.March).Time))
	assert.Nil(t, v.End)

	assert.Error(t, json.Unmarshal([]byte(`{"start":20210301}`), &v))
}

func TestMarshalKeepsOffset(t *testing.T) {
	d, err := Parse("2021-03-01T00:00:00+02:00")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2021-03-01T00:00:00+02:00"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "Mar 2021", back.MonthYear())
}
