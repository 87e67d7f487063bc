package domain

import (
	"strconv"
	"strings"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Coordinate is an immutable latitude/longitude pair. Construction never
// fails; range checking is a separate step so callers can choose between
// rejecting bad input (manual edits) and substituting a fallback value
// (provider errors). The zero value is the (0, 0) default coordinate.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoordinate(latitude, longitude float64) Coordinate {
	return Coordinate{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func IsValidLatitude(v float64) bool {
	return v >= MinLatitude && v <= MaxLatitude
}

func IsValidLongitude(v float64) bool {
	return v >= MinLongitude && v <= MaxLongitude
}

func (c Coordinate) Validate() error {
	if !IsValidLatitude(c.Latitude) {
		return ErrLatitudeOutOfRange(c.Latitude)
	}

	if !IsValidLongitude(c.Longitude) {
		return ErrLongitudeOutOfRange(c.Longitude)
	}

	return nil
}

func (c Coordinate) IsValid() bool {
	return c.Validate() == nil
}

// FormatComponent renders a coordinate component with exactly two fractional
// digits, "." as the separator regardless of locale, round-half-to-even.
// Negative zero (and any value that rounds to -0.00) renders as "0.00".
func FormatComponent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func (c Coordinate) FormattedLatitude() string {
	return FormatComponent(c.Latitude)
}

func (c Coordinate) FormattedLongitude() string {
	return FormatComponent(c.Longitude)
}

// Equals is exact structural equality, no epsilon tolerance.
func (c Coordinate) Equals(other Coordinate) bool {
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}

func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

func (c Coordinate) String() string {
	return c.FormattedLatitude() + ", " + c.FormattedLongitude()
}

// ParseCoordinate parses textual latitude/longitude as entered in the edit
// fields. Parse errors and range errors are reported per field, latitude
// first.
func ParseCoordinate(latitudeText, longitudeText string) (Coordinate, error) {
	latitude, err := parseComponent(latitudeText, FieldLatitude)
	if err != nil {
		return Coordinate{}, err
	}

	longitude, err := parseComponent(longitudeText, FieldLongitude)
	if err != nil {
		return Coordinate{}, err
	}

	if !IsValidLatitude(latitude) {
		return Coordinate{}, ErrLatitudeOutOfRange(latitude)
	}

	if !IsValidLongitude(longitude) {
		return Coordinate{}, ErrLongitudeOutOfRange(longitude)
	}

	return NewCoordinate(latitude, longitude), nil
}

func parseComponent(text string, field CoordinateField) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrNotANumber(field, text)
	}
	return v, nil
}

// CoordinateField identifies which half of the pair an error refers to.
type CoordinateField string

const (
	FieldLatitude  CoordinateField = "latitude"
	FieldLongitude CoordinateField = "longitude"
)

// CommitSource records which input path produced a committed coordinate.
type CommitSource string

const (
	SourceProvider CommitSource = "provider"
	SourceManual   CommitSource = "manual"
	SourceMock     CommitSource = "mock"
	SourceFallback CommitSource = "fallback"
)

// CoordinateChange is what the manager emits on every commit: the new value
// plus the path it arrived through.
type CoordinateChange struct {
	Coordinate Coordinate   `json:"coordinate"`
	Source     CommitSource `json:"source"`
}
