package aqi

// Pollutant is the closed set of pollutants we carry AQI breakpoint tables
// for. Raw device sensor labels map onto these via Canonical; anything that
// does not resolve has no AQI.
type Pollutant int

const (
	PM25 Pollutant = iota
	PM10
	O3
	CO
)

func (p Pollutant) String() string {
	switch p {
	case PM25:
		return "pm25"
	case PM10:
		return "pm10"
	case O3:
		return "o3"
	case CO:
		return "co"
	}
	return "unknown"
}

// Breakpoint is one row of an EPA AQI breakpoint table: a concentration range
// mapped linearly onto an index range, with the category label for that band.
type Breakpoint struct {
	CLow, CHigh float64
	ILow, IHigh int
	Category    string
}

// PM2.5 in µg/m³, 24-hr.
var pm25Table = []Breakpoint{
	{0.0, 12.0, 0, 50, "Good"},
	{12.1, 35.4, 51, 100, "Moderate"},
	{35.5, 55.4, 101, 150, "Unhealthy for Sensitive Groups"},
	{55.5, 150.4, 151, 200, "Unhealthy"},
	{150.5, 250.4, 201, 300, "Very Unhealthy"},
	{250.5, 500.4, 301, 500, "Hazardous"},
}

// PM10 in µg/m³, 24-hr.
var pm10Table = []Breakpoint{
	{0, 54, 0, 50, "Good"},
	{55, 154, 51, 100, "Moderate"},
	{155, 254, 101, 150, "Unhealthy for Sensitive Groups"},
	{255, 354, 151, 200, "Unhealthy"},
	{355, 424, 201, 300, "Very Unhealthy"},
	{425, 604, 301, 500, "Hazardous"},
}

// Ozone in ppm, 8-hr. Above 0.200 the EPA switches to the 1-hr table, so we
// cap at 300 here.
var o3Table = []Breakpoint{
	{0.000, 0.054, 0, 50, "Good"},
	{0.055, 0.070, 51, 100, "Moderate"},
	{0.071, 0.085, 101, 150, "Unhealthy for Sensitive Groups"},
	{0.086, 0.105, 151, 200, "Unhealthy"},
	{0.106, 0.200, 201, 300, "Very Unhealthy"},
}

// CO in ppm, 8-hr.
var coTable = []Breakpoint{
	{0.0, 4.4, 0, 50, "Good"},
	{4.5, 9.4, 51, 100, "Moderate"},
	{9.5, 12.4, 101, 150, "Unhealthy for Sensitive Groups"},
	{12.5, 15.4, 151, 200, "Unhealthy"},
	{15.5, 30.4, 201, 300, "Very Unhealthy"},
	{30.5, 50.4, 301, 500, "Hazardous"},
}

func (p Pollutant) table() []Breakpoint {
	switch p {
	case PM25:
		return pm25Table
	case PM10:
		return pm10Table
	case O3:
		return o3Table
	case CO:
		return coTable
	}
	return nil
}

// Device payload label -> canonical pollutant. The raw sensor_type is always
// stored as-is; this mapping only drives AQI and threshold lookup.
var aliases = map[string]Pollutant{
	"pm25_ugm3": PM25,
	"pm10_ugm3": PM10,
	"co_ppm":    CO,
	"co":        CO,
}

var canonical = map[string]Pollutant{
	"pm25": PM25,
	"pm10": PM10,
	"o3":   O3,
	"co":   CO,
}
