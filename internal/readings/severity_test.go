package readings_test

import (
	"testing"

	"github.com/aeris-iot/aeris-backend/internal/readings"
)

func intPtr(v int) *int { return &v }

// TestEvaluateSeverity_AQIDriven verifies that when an AQI exists it alone
// decides the severity, regardless of any threshold record.
func TestEvaluateSeverity_AQIDriven(t *testing.T) {
	threshold := &readings.PollutantThreshold{SensorType: "pm25", Warn: 1.0, Danger: 2.0}

	cases := []struct {
		aqi  int
		want readings.Severity
	}{
		{0, readings.SeverityNone},
		{50, readings.SeverityNone},
		{100, readings.SeverityNone},
		{101, readings.SeverityWarn},
		{150, readings.SeverityWarn},
		{200, readings.SeverityWarn},
		{201, readings.SeverityDanger},
		{500, readings.SeverityDanger},
	}
	for _, tc := range cases {
		// Value far above both thresholds: must not matter on the AQI path.
		got := readings.EvaluateSeverity(intPtr(tc.aqi), 9999.0, threshold)
		if got != tc.want {
			t.Errorf("EvaluateSeverity(aqi=%d) = %v, want %v", tc.aqi, got, tc.want)
		}
	}
}

// TestEvaluateSeverity_ThresholdFallback verifies the threshold path used
// when no AQI is available.
func TestEvaluateSeverity_ThresholdFallback(t *testing.T) {
	threshold := &readings.PollutantThreshold{SensorType: "voc_index", Warn: 250, Danger: 400}

	cases := []struct {
		value float64
		want  readings.Severity
	}{
		{0, readings.SeverityNone},
		{249.9, readings.SeverityNone},
		{250, readings.SeverityWarn},
		{399.9, readings.SeverityWarn},
		{400, readings.SeverityDanger},
		{1000, readings.SeverityDanger},
	}
	for _, tc := range cases {
		got := readings.EvaluateSeverity(nil, tc.value, threshold)
		if got != tc.want {
			t.Errorf("EvaluateSeverity(value=%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

// TestEvaluateSeverity_NoSignal verifies that no AQI and no threshold yields
// none rather than an alert or a panic.
func TestEvaluateSeverity_NoSignal(t *testing.T) {
	if got := readings.EvaluateSeverity(nil, 12345.0, nil); got != readings.SeverityNone {
		t.Errorf("EvaluateSeverity(nil, nil) = %v, want none", got)
	}
}

// TestSeverity_Ordering verifies severity is an ordinal, not a flag.
func TestSeverity_Ordering(t *testing.T) {
	if !(readings.SeverityNone < readings.SeverityWarn && readings.SeverityWarn < readings.SeverityDanger) {
		t.Error("severity levels must order none < warn < danger")
	}
}

// TestSeverity_StringRoundTrip verifies the stored string form parses back.
func TestSeverity_StringRoundTrip(t *testing.T) {
	for _, s := range []readings.Severity{readings.SeverityNone, readings.SeverityWarn, readings.SeverityDanger} {
		if got := readings.ParseSeverity(s.String()); got != s {
			t.Errorf("ParseSeverity(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if got := readings.ParseSeverity("bogus"); got != readings.SeverityNone {
		t.Errorf("ParseSeverity(bogus) = %v, want none", got)
	}
}
