package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidLatitude(t *testing.T) {
	valid := []float64{-90, -89.9999, -45.5, 0, 37.7749, 89.9999, 90}
	for _, v := range valid {
		assert.True(t, IsValidLatitude(v), "latitude %v should be valid", v)
	}

	invalid := []float64{-90.0001, -91, 90.0001, 95, 180, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, v := range invalid {
		assert.False(t, IsValidLatitude(v), "latitude %v should be invalid", v)
	}
}

func TestIsValidLongitude(t *testing.T) {
	valid := []float64{-180, -179.9999, -122.4194, 0, 122.4194, 179.9999, 180}
	for _, v := range valid {
		assert.True(t, IsValidLongitude(v), "longitude %v should be valid", v)
	}

	invalid := []float64{-180.0001, -181, 180.0001, 200, math.Inf(1), math.NaN()}
	for _, v := range invalid {
		assert.False(t, IsValidLongitude(v), "longitude %v should be invalid", v)
	}
}

func TestNewCoordinateDoesNotReject(t *testing.T) {
	// Construction is unconditional; validation is a separate step so the
	// manager can substitute a fallback instead of failing.
	c := NewCoordinate(95, 200)
	assert.Equal(t, 95.0, c.Latitude)
	assert.Equal(t, 200.0, c.Longitude)

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, IsLocationErrorCode(err, LocationErrorRange))
}

func TestValidateReportsLatitudeFirst(t *testing.T) {
	err := NewCoordinate(91, 181).Validate()
	require.Error(t, err)

	locErr, ok := err.(LocationError)
	require.True(t, ok)
	assert.Equal(t, string(FieldLatitude), locErr.Details["field"])
}

func TestFormatComponent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.0, "0.00"},
		{math.Copysign(0, -1), "0.00"},
		{-0.001, "0.00"},
		{37.7749, "37.77"},
		{-122.4194, "-122.42"},
		{90, "90.00"},
		{-180, "-180.00"},
		{1.005, "1.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatComponent(tt.value), "format %v", tt.value)
	}
}

func TestFormattedComponents(t *testing.T) {
	c := NewCoordinate(37.7749, -122.4194)
	assert.Equal(t, "37.77", c.FormattedLatitude())
	assert.Equal(t, "-122.42", c.FormattedLongitude())
	assert.Equal(t, "37.77, -122.42", c.String())
}

func TestEqualsIsExact(t *testing.T) {
	a := NewCoordinate(37.7749, -122.4194)
	b := NewCoordinate(37.7749, -122.4194)
	c := NewCoordinate(37.77490000001, -122.4194)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestZeroValueIsDefaultCoordinate(t *testing.T) {
	var c Coordinate
	assert.True(t, c.IsZero())
	assert.True(t, c.IsValid())
	assert.Equal(t, "0.00", c.FormattedLatitude())
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("37.77", "-122.41")
	require.NoError(t, err)
	assert.True(t, c.Equals(NewCoordinate(37.77, -122.41)))

	// Whitespace from text fields is tolerated.
	c, err = ParseCoordinate(" 10.5 ", " 20 ")
	require.NoError(t, err)
	assert.True(t, c.Equals(NewCoordinate(10.5, 20)))
}

func TestParseCoordinateParseFailure(t *testing.T) {
	_, err := ParseCoordinate("abc", "10")
	require.Error(t, err)
	assert.True(t, IsLocationErrorCode(err, LocationErrorParse))

	locErr := err.(LocationError)
	assert.Equal(t, string(FieldLatitude), locErr.Details["field"])

	_, err = ParseCoordinate("10", "")
	require.Error(t, err)
	assert.True(t, IsLocationErrorCode(err, LocationErrorParse))
	assert.Equal(t, string(FieldLongitude), err.(LocationError).Details["field"])
}

func TestParseCoordinateRangeFailure(t *testing.T) {
	_, err := ParseCoordinate("95", "10")
	require.Error(t, err)
	assert.True(t, IsLocationErrorCode(err, LocationErrorRange))
	assert.Equal(t, string(FieldLatitude), err.(LocationError).Details["field"])

	_, err = ParseCoordinate("45", "-180.0001")
	require.Error(t, err)
	assert.True(t, IsLocationErrorCode(err, LocationErrorRange))
	assert.Equal(t, string(FieldLongitude), err.(LocationError).Details["field"])
}
