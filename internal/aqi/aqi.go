// Package aqi converts pollutant concentrations to the EPA Air Quality Index
// via piecewise-linear breakpoint tables (PM2.5, PM10 in µg/m³; O3, CO in ppm,
// 8-hr). Tables are fixed at compile time and safe for concurrent use.
package aqi

import (
	"math"
	"strings"
)

const (
	CategoryUnknown    = "Unknown"
	CategoryOutOfRange = "Out of range"
)

// Canonical maps an incoming sensor_type label (e.g. "pm25_ugm3", "CO_ppm")
// to the pollutant it measures. The label is trimmed and lower-cased, checked
// against the alias table, then against the canonical keys themselves.
func Canonical(sensorType string) (Pollutant, bool) {
	st := strings.ToLower(strings.TrimSpace(sensorType))
	if st == "" {
		return 0, false
	}
	if p, ok := aliases[st]; ok {
		return p, true
	}
	if p, ok := canonical[st]; ok {
		return p, true
	}
	return 0, false
}

// Compute returns (aqi, category) for a sensor reading. A nil AQI means the
// sensor type is unsupported ("Unknown") or the value falls outside every
// breakpoint range ("Out of range"); neither is an error.
func Compute(sensorType string, value float64) (*int, string) {
	p, ok := Canonical(sensorType)
	if !ok {
		return nil, CategoryUnknown
	}

	for _, bp := range p.table() {
		if bp.CLow <= value && value <= bp.CHigh {
			idx := interpolate(bp, value)
			return &idx, bp.Category
		}
	}
	return nil, CategoryOutOfRange
}

// CategoryForAQI recomputes the category label from a stored index. Read
// paths use this instead of the value stored at write time, so a label change
// never needs a backfill.
func CategoryForAQI(sensorType string, aqiVal *int) string {
	p, ok := Canonical(sensorType)
	if !ok {
		return CategoryUnknown
	}
	if aqiVal == nil {
		return CategoryOutOfRange
	}
	for _, bp := range p.table() {
		if bp.ILow <= *aqiVal && *aqiVal <= bp.IHigh {
			return bp.Category
		}
	}
	return CategoryOutOfRange
}

// interpolate applies the EPA linear formula. Rounding is half away from zero
// (math.Round). A degenerate range (CHigh == CLow) returns IHigh directly.
func interpolate(bp Breakpoint, c float64) int {
	if bp.CHigh == bp.CLow {
		return bp.IHigh
	}
	v := float64(bp.IHigh-bp.ILow)/(bp.CHigh-bp.CLow)*(c-bp.CLow) + float64(bp.ILow)
	return int(math.Round(v))
}
