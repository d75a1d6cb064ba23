package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgress_Rounding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.755", "0.76"},
		{"0.754", "0.75"},
		{"0.745", "0.75"},
		{"0.7549", "0.75"},
		{"0.999", "1.00"},
		{"0", "0.00"},
		{"1", "1.00"},
		{"1.0", "1.00"},
		{".5", "0.50"},
		{"0.05", "0.05"},
		{"5e-1", "0.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseProgress(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestParseProgress_OutOfRange(t *testing.T) {
	for _, in := range []string{"-0.01", "1.001", "1.01", "2", "abc", "", "NaN", "Inf"} {
		_, err := ParseProgress(in)
		assert.True(t, errors.Is(err, ErrValidation), "input %q", in)
	}
}

func TestProgress_JSON(t *testing.T) {
	var body struct {
		Progress Progress `json:"progress"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"progress":0.755}`), &body))
	assert.Equal(t, Progress(76), body.Progress)

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"progress":0.76}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"progress":1.5}`), &body))
}

func TestProgress_FloatRoundTrip(t *testing.T) {
	p, err := ParseProgress("0.76")
	require.NoError(t, err)
	assert.Equal(t, p, ProgressFromFloat(p.Float64()))
	assert.True(t, ProgressComplete.Complete())
	assert.False(t, Progress(99).Complete())
}
